package discord

import (
	"strconv"
	"time"

	"effettobot/internal/domain/service"
)

// Channel permission bits used for ticket overwrites.
const (
	permViewChannel        = 1 << 10
	permSendMessages       = 1 << 11
	permReadMessageHistory = 1 << 16
)

// Component and interaction type constants, as the platform numbers them.
const (
	componentActionRow  = 1
	componentButton     = 2
	componentSelectMenu = 3
	componentTextInput  = 4

	textInputShort     = 1
	textInputParagraph = 2

	interactionTypePing      = 1
	interactionTypeCommand   = 2
	interactionTypeComponent = 3
	interactionTypeModal     = 5

	callbackPong         = 1
	callbackReply        = 4
	callbackUpdate       = 7
	callbackModal        = 9
	messageFlagEphemeral = 64
)

type wireEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type wireEmbedFooter struct {
	Text string `json:"text"`
}

type wireEmbed struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Color       int              `json:"color,omitempty"`
	Fields      []wireEmbedField `json:"fields,omitempty"`
	Footer      *wireEmbedFooter `json:"footer,omitempty"`
	Timestamp   string           `json:"timestamp,omitempty"`
}

type wireEmoji struct {
	Name string `json:"name"`
}

type wireSelectOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// wireComponent is the union shape for action rows, buttons, selects and
// text inputs; Type decides which fields are meaningful.
type wireComponent struct {
	Type        int                `json:"type"`
	Style       int                `json:"style,omitempty"`
	Label       string             `json:"label,omitempty"`
	Emoji       *wireEmoji         `json:"emoji,omitempty"`
	CustomID    string             `json:"custom_id,omitempty"`
	Disabled    bool               `json:"disabled,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Options     []wireSelectOption `json:"options,omitempty"`
	Value       string             `json:"value,omitempty"`
	Required    *bool              `json:"required,omitempty"`
	MaxLength   int                `json:"max_length,omitempty"`
	Components  []wireComponent    `json:"components,omitempty"`
}

type wireMessage struct {
	Content    string          `json:"content,omitempty"`
	Embeds     []wireEmbed     `json:"embeds,omitempty"`
	Components []wireComponent `json:"components,omitempty"`
	Flags      int             `json:"flags,omitempty"`
}

type wireOverwrite struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow,omitempty"`
	Deny  string `json:"deny,omitempty"`
}

type wireChannelCreate struct {
	Name                 string          `json:"name"`
	Type                 int             `json:"type"`
	ParentID             string          `json:"parent_id,omitempty"`
	PermissionOverwrites []wireOverwrite `json:"permission_overwrites,omitempty"`
}

func encodeMessage(msg service.OutboundMessage) wireMessage {
	out := wireMessage{Content: msg.Content}
	for _, e := range msg.Embeds {
		out.Embeds = append(out.Embeds, encodeEmbed(e))
	}
	for _, row := range msg.Rows {
		out.Components = append(out.Components, encodeRow(row))
	}
	return out
}

func encodeEmbed(e service.Embed) wireEmbed {
	out := wireEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, wireEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if e.FooterText != "" {
		out.Footer = &wireEmbedFooter{Text: e.FooterText}
	}
	if e.Timestamp != nil {
		out.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	return out
}

func encodeRow(row service.ActionRow) wireComponent {
	out := wireComponent{Type: componentActionRow}
	if row.Menu != nil {
		menu := wireComponent{
			Type:        componentSelectMenu,
			CustomID:    row.Menu.CustomID,
			Placeholder: row.Menu.Placeholder,
		}
		for _, o := range row.Menu.Options {
			menu.Options = append(menu.Options, wireSelectOption{
				Label:       o.Label,
				Value:       o.Value,
				Description: o.Description,
			})
		}
		out.Components = append(out.Components, menu)
		return out
	}

	for _, b := range row.Buttons {
		btn := wireComponent{
			Type:     componentButton,
			Style:    int(b.Style),
			Label:    b.Label,
			CustomID: b.CustomID,
			Disabled: b.Disabled,
		}
		if b.Emoji != "" {
			btn.Emoji = &wireEmoji{Name: b.Emoji}
		}
		out.Components = append(out.Components, btn)
	}
	return out
}

func encodeModal(modal service.Modal) map[string]any {
	rows := make([]wireComponent, 0, len(modal.Fields))
	for _, f := range modal.Fields {
		style := textInputShort
		if f.Paragraph {
			style = textInputParagraph
		}
		required := f.Required
		input := wireComponent{
			Type:        componentTextInput,
			Style:       style,
			CustomID:    f.CustomID,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Required:    &required,
			MaxLength:   f.MaxLength,
		}
		rows = append(rows, wireComponent{
			Type:       componentActionRow,
			Components: []wireComponent{input},
		})
	}
	return map[string]any{
		"custom_id":  modal.CustomID,
		"title":      modal.Title,
		"components": rows,
	}
}

func encodeOverwrites(overwrites []service.PermissionOverwrite, guildID string) []wireOverwrite {
	out := make([]wireOverwrite, 0, len(overwrites))
	for _, ow := range overwrites {
		wire := wireOverwrite{ID: ow.TargetID, Type: 1}
		if ow.Role || ow.Everyone {
			wire.Type = 0
		}
		if ow.Everyone {
			// The @everyone role shares the guild's id.
			wire.ID = guildID
		}
		bits := permissionBits(permViewChannel | permSendMessages | permReadMessageHistory)
		if ow.Allow {
			wire.Allow = bits
		} else {
			wire.Deny = bits
		}
		out = append(out, wire)
	}
	return out
}

// permissionBits renders a permission bitfield the way the API expects it,
// as a decimal string.
func permissionBits(bits int) string {
	return strconv.Itoa(bits)
}
