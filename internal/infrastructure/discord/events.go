package discord

import (
	"encoding/json"
	"fmt"
	"strconv"

	"effettobot/internal/adapter/dispatch"
)

// gatewayPayload is the envelope every gateway frame arrives in.
type gatewayPayload struct {
	Op       int             `json:"op"`
	Data     json.RawMessage `json:"d"`
	Sequence *int64          `json:"s"`
	Type     string          `json:"t"`
}

type interactionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type interactionEvent struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Type      int    `json:"type"`
	ChannelID string `json:"channel_id"`
	Member    *struct {
		User        interactionUser `json:"user"`
		Permissions string          `json:"permissions"`
	} `json:"member"`
	User *interactionUser `json:"user"`
	Data struct {
		Name    string `json:"name"`
		Options []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"options"`
		CustomID      string   `json:"custom_id"`
		ComponentType int      `json:"component_type"`
		Values        []string `json:"values"`
		Components    []struct {
			Components []struct {
				CustomID string `json:"custom_id"`
				Value    string `json:"value"`
			} `json:"components"`
		} `json:"components"`
	} `json:"data"`
}

type messageEvent struct {
	ID        string          `json:"id"`
	ChannelID string          `json:"channel_id"`
	Content   string          `json:"content"`
	Author    interactionUser `json:"author"`
	AuthorBot bool            `json:"-"`
}

// decodeInteraction normalizes a raw INTERACTION_CREATE into the dispatch
// form, plus the id/token pair the responder needs.
func decodeInteraction(raw json.RawMessage) (*dispatch.Interaction, string, string, error) {
	var event interactionEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, "", "", fmt.Errorf("decode interaction: %w", err)
	}

	ic := &dispatch.Interaction{
		ChannelID: event.ChannelID,
	}

	if event.Member != nil {
		ic.User = dispatch.User{ID: event.Member.User.ID, Username: event.Member.User.Username}
		ic.Perms = decodePermissions(event.Member.Permissions)
	} else if event.User != nil {
		ic.User = dispatch.User{ID: event.User.ID, Username: event.User.Username}
	}

	switch event.Type {
	case interactionTypeCommand:
		ic.Kind = dispatch.KindCommand
		ic.CommandName = event.Data.Name
		ic.Options = make(map[string]string, len(event.Data.Options))
		for _, opt := range event.Data.Options {
			ic.Options[opt.Name] = decodeOptionValue(opt.Value)
		}
	case interactionTypeComponent:
		ic.CustomID = event.Data.CustomID
		if event.Data.ComponentType == componentSelectMenu {
			ic.Kind = dispatch.KindMenu
			ic.Values = event.Data.Values
		} else {
			ic.Kind = dispatch.KindButton
		}
	case interactionTypeModal:
		ic.Kind = dispatch.KindModal
		ic.CustomID = event.Data.CustomID
		ic.Fields = make(map[string]string)
		for _, row := range event.Data.Components {
			for _, input := range row.Components {
				ic.Fields[input.CustomID] = input.Value
			}
		}
	default:
		return nil, "", "", fmt.Errorf("unsupported interaction type %d", event.Type)
	}

	return ic, event.ID, event.Token, nil
}

// decodeOptionValue flattens slash-command option values, which arrive as
// strings, numbers or booleans, into the string form the handlers parse.
func decodeOptionValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return string(raw)
}

func decodePermissions(raw string) dispatch.Permissions {
	bits, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return dispatch.Permissions{}
	}
	return dispatch.Permissions{
		Administrator:  bits&0x8 != 0,
		ManageChannels: bits&0x10 != 0,
	}
}

func decodeMessage(raw json.RawMessage) (*messageEvent, error) {
	var event struct {
		ID        string `json:"id"`
		ChannelID string `json:"channel_id"`
		Content   string `json:"content"`
		Author    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Bot      bool   `json:"bot"`
		} `json:"author"`
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	return &messageEvent{
		ID:        event.ID,
		ChannelID: event.ChannelID,
		Content:   event.Content,
		Author:    interactionUser{ID: event.Author.ID, Username: event.Author.Username},
		AuthorBot: event.Author.Bot,
	}, nil
}
