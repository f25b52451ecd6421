package dispatch

import (
	"strings"
)

// Kind closes the set of interactive event shapes the bot handles. Routing
// switches exhaustively over it; adding an affordance means adding a case
// here and a handler registration, not another string comparison chain.
type Kind int

const (
	KindCommand Kind = iota
	KindButton
	KindMenu
	KindModal
)

type User struct {
	ID       string
	Username string
}

type Permissions struct {
	Administrator  bool
	ManageChannels bool
}

// Elevated is the privilege bar for staff decisions (claiming tooling,
// review approval, channel deletion).
func (p Permissions) Elevated() bool {
	return p.Administrator || p.ManageChannels
}

// Interaction is one inbound platform event in normalized form. Exactly the
// fields for its Kind are populated: CommandName/Options for commands,
// CustomID for components, Values for menus, Fields for modal submissions.
type Interaction struct {
	Kind        Kind
	CommandName string
	Options     map[string]string
	CustomID    string
	Values      []string
	Fields      map[string]string
	ChannelID   string
	User        User
	Perms       Permissions
}

// customIDKey splits "approve_review:<id>" style custom ids into the
// routing key and the bound argument.
func customIDKey(customID string) (key, arg string) {
	if i := strings.IndexByte(customID, ':'); i >= 0 {
		return customID[:i], customID[i+1:]
	}
	return customID, ""
}
