package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"effettobot/internal/adapter/dispatch"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
)

const defaultAPIBase = "https://discord.com/api/v10"

// RestClient talks to the platform's REST API and implements
// service.ChatPlatform. One instance is shared by the workflows and the
// gateway's interaction responders.
type RestClient struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	applicationID string
	guildID       string
}

func NewRestClient(token, applicationID, guildID string) *RestClient {
	return &RestClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:       defaultAPIBase,
		token:         token,
		applicationID: applicationID,
		guildID:       guildID,
	}
}

func (c *RestClient) CreateChannel(ctx context.Context, name, parentID string, overwrites []service.PermissionOverwrite) (string, error) {
	body := wireChannelCreate{
		Name:                 name,
		Type:                 0,
		ParentID:             parentID,
		PermissionOverwrites: encodeOverwrites(overwrites, c.guildID),
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/guilds/%s/channels", c.guildID), body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *RestClient) DeleteChannel(ctx context.Context, channelID string) error {
	return c.do(ctx, http.MethodDelete, "/channels/"+channelID, nil, nil)
}

func (c *RestClient) Send(ctx context.Context, channelID string, msg service.OutboundMessage) (string, error) {
	path := fmt.Sprintf("/channels/%s/messages", channelID)

	var sent struct {
		ID string `json:"id"`
	}
	if len(msg.Files) > 0 {
		if err := c.doMultipart(ctx, http.MethodPost, path, encodeMessage(msg), msg.Files, &sent); err != nil {
			return "", err
		}
		return sent.ID, nil
	}

	if err := c.do(ctx, http.MethodPost, path, encodeMessage(msg), &sent); err != nil {
		return "", err
	}
	return sent.ID, nil
}

func (c *RestClient) EditMessage(ctx context.Context, channelID, messageID string, msg service.OutboundMessage) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodPatch, path, encodeMessage(msg), nil)
}

func (c *RestClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), nil, nil)
}

func (c *RestClient) FetchHistory(ctx context.Context, channelID string, limit int) ([]service.HistoryMessage, error) {
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", channelID, limit)

	var raw []struct {
		ID     string `json:"id"`
		Author struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Bot      bool   `json:"bot"`
		} `json:"author"`
		Content     string `json:"content"`
		Timestamp   string `json:"timestamp"`
		Attachments []struct {
			Filename string `json:"filename"`
			URL      string `json:"url"`
		} `json:"attachments"`
		Embeds []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"embeds"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	messages := make([]service.HistoryMessage, 0, len(raw))
	for _, m := range raw {
		createdAt, _ := time.Parse(time.RFC3339, m.Timestamp)
		msg := service.HistoryMessage{
			ID:         m.ID,
			AuthorID:   m.Author.ID,
			AuthorName: m.Author.Username,
			Bot:        m.Author.Bot,
			Content:    m.Content,
			CreatedAt:  createdAt,
		}
		for _, a := range m.Attachments {
			msg.Attachments = append(msg.Attachments, a.Filename)
		}
		for _, e := range m.Embeds {
			msg.Embeds = append(msg.Embeds, service.HistoryEmbed{Title: e.Title, Description: e.Description})
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (c *RestClient) React(ctx context.Context, channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, url.PathEscape(emoji))
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

func (c *RestClient) GrantRole(ctx context.Context, userID, roleID string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/guilds/%s/members/%s/roles/%s", c.guildID, userID, roleID), nil, nil)
}

func (c *RestClient) RevokeRole(ctx context.Context, userID, roleID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/guilds/%s/members/%s/roles/%s", c.guildID, userID, roleID), nil, nil)
}

// RegisterCommands bulk-overwrites the guild's slash commands so the
// registered surface always matches the dispatcher's routing table.
func (c *RestClient) RegisterCommands(ctx context.Context, specs []dispatch.CommandSpec) error {
	type wireOption struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Type        int    `json:"type"`
		Required    bool   `json:"required,omitempty"`
	}
	type wireCommand struct {
		Name               string       `json:"name"`
		Description        string       `json:"description"`
		Options            []wireOption `json:"options,omitempty"`
		DefaultPermissions *string      `json:"default_member_permissions,omitempty"`
	}

	body := make([]wireCommand, 0, len(specs))
	for _, spec := range specs {
		cmd := wireCommand{
			Name:        spec.Name,
			Description: spec.Description,
		}
		if spec.DefaultPermissions != "" {
			perms := spec.DefaultPermissions
			cmd.DefaultPermissions = &perms
		}
		for _, opt := range spec.Options {
			cmd.Options = append(cmd.Options, wireOption{
				Name:        opt.Name,
				Description: opt.Description,
				Type:        opt.Type,
				Required:    opt.Required,
			})
		}
		body = append(body, cmd)
	}

	path := fmt.Sprintf("/applications/%s/guilds/%s/commands", c.applicationID, c.guildID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}

func (c *RestClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("Failed to encode API request", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Internal("Failed to build API request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart uploads file attachments alongside the JSON payload, the
// payload_json convention the messages endpoint requires.
func (c *RestClient) doMultipart(ctx context.Context, method, path string, payload wireMessage, files []service.FileAttachment, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("Failed to encode API request", err)
	}
	if err := writer.WriteField("payload_json", string(encoded)); err != nil {
		return errors.Internal("Failed to encode API request", err)
	}

	for i, file := range files {
		part, err := writer.CreateFormFile(fmt.Sprintf("files[%d]", i), file.Name)
		if err != nil {
			return errors.Internal("Failed to encode file attachment", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return errors.Internal("Failed to encode file attachment", err)
		}
	}
	if err := writer.Close(); err != nil {
		return errors.Internal("Failed to encode API request", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return errors.Internal("Failed to build API request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out)
}

func (c *RestClient) send(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Internal("Platform API request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return errors.Internal(
			fmt.Sprintf("Platform API returned %d", resp.StatusCode),
			fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, string(detail)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Internal("Failed to decode API response", err)
	}
	return nil
}
