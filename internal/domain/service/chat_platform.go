package service

import (
	"context"
	"time"
)

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	FooterText  string
	Timestamp   *time.Time
}

type Button struct {
	CustomID string
	Label    string
	Emoji    string
	Style    ButtonStyle
	Disabled bool
}

type SelectOption struct {
	Label       string
	Value       string
	Description string
}

type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
}

// ActionRow carries either buttons or a single select menu, never both.
type ActionRow struct {
	Buttons []Button
	Menu    *SelectMenu
}

type ModalField struct {
	CustomID    string
	Label       string
	Placeholder string
	Value       string
	Paragraph   bool
	Required    bool
	MaxLength   int
}

type Modal struct {
	CustomID string
	Title    string
	Fields   []ModalField
}

type FileAttachment struct {
	Name string
	Data []byte
}

type OutboundMessage struct {
	Content string
	Embeds  []Embed
	Rows    []ActionRow
	Files   []FileAttachment
}

// PermissionOverwrite scopes channel visibility per principal. Everyone
// addresses the guild-wide role; otherwise TargetID is a user or role id.
// Allow grants view/send/history, deny hides the channel entirely.
type PermissionOverwrite struct {
	TargetID string
	Role     bool
	Everyone bool
	Allow    bool
}

// HistoryEmbed is the rich-content subset the transcript cares about.
type HistoryEmbed struct {
	Title       string
	Description string
}

type HistoryMessage struct {
	ID          string
	AuthorID    string
	AuthorName  string
	Bot         bool
	Content     string
	CreatedAt   time.Time
	Attachments []string
	Embeds      []HistoryEmbed
}

// ChatPlatform is the outbound surface of the chat platform. Implementations
// live in the infrastructure layer; the workflows only ever see this
// interface, which keeps them testable against a recording fake.
type ChatPlatform interface {
	CreateChannel(ctx context.Context, name, parentID string, overwrites []PermissionOverwrite) (string, error)
	DeleteChannel(ctx context.Context, channelID string) error
	Send(ctx context.Context, channelID string, msg OutboundMessage) (string, error)
	EditMessage(ctx context.Context, channelID, messageID string, msg OutboundMessage) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	// FetchHistory returns up to limit most recent messages, newest first.
	FetchHistory(ctx context.Context, channelID string, limit int) ([]HistoryMessage, error)
	React(ctx context.Context, channelID, messageID, emoji string) error
	GrantRole(ctx context.Context, userID, roleID string) error
	RevokeRole(ctx context.Context, userID, roleID string) error
}

// InteractionResponder acknowledges one inbound interaction. The platform
// requires exactly one acknowledgement per interaction; implementations
// switch to follow-up delivery once the first reply has gone out.
type InteractionResponder interface {
	Reply(ctx context.Context, msg OutboundMessage, ephemeral bool) error
	// Update rewrites the message the component interaction came from.
	Update(ctx context.Context, msg OutboundMessage) error
	ShowModal(ctx context.Context, modal Modal) error
	Replied() bool
}
