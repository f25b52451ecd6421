package discord

import (
	"context"
	"fmt"
	"net/http"

	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
)

// responder acknowledges a single interaction. The first Reply goes through
// the interaction callback; once acknowledged, further replies become
// follow-up messages on the interaction's webhook. Each responder serves
// exactly one interaction on one goroutine.
type responder struct {
	rest          *RestClient
	interactionID string
	token         string
	replied       bool
}

func (c *RestClient) NewResponder(interactionID, token string) service.InteractionResponder {
	return &responder{
		rest:          c,
		interactionID: interactionID,
		token:         token,
	}
}

func (r *responder) Reply(ctx context.Context, msg service.OutboundMessage, ephemeral bool) error {
	payload := encodeMessage(msg)
	if ephemeral {
		payload.Flags = messageFlagEphemeral
	}

	if r.replied {
		return r.followup(ctx, payload)
	}

	if err := r.callback(ctx, callbackReply, payload); err != nil {
		return err
	}
	r.replied = true
	return nil
}

func (r *responder) Update(ctx context.Context, msg service.OutboundMessage) error {
	if r.replied {
		return errors.Internal("Interaction already acknowledged", nil)
	}

	payload := encodeMessage(msg)
	// An update must replace the originating message's components; encode
	// an explicit empty list when the caller strips them.
	if payload.Components == nil {
		payload.Components = []wireComponent{}
	}

	if err := r.callback(ctx, callbackUpdate, payload); err != nil {
		return err
	}
	r.replied = true
	return nil
}

func (r *responder) ShowModal(ctx context.Context, modal service.Modal) error {
	if r.replied {
		return errors.Internal("Interaction already acknowledged", nil)
	}

	if err := r.callback(ctx, callbackModal, encodeModal(modal)); err != nil {
		return err
	}
	r.replied = true
	return nil
}

func (r *responder) Replied() bool {
	return r.replied
}

func (r *responder) callback(ctx context.Context, callbackType int, data any) error {
	body := map[string]any{
		"type": callbackType,
		"data": data,
	}
	path := fmt.Sprintf("/interactions/%s/%s/callback", r.interactionID, r.token)
	return r.rest.do(ctx, http.MethodPost, path, body, nil)
}

func (r *responder) followup(ctx context.Context, payload wireMessage) error {
	path := fmt.Sprintf("/webhooks/%s/%s", r.rest.applicationID, r.token)
	return r.rest.do(ctx, http.MethodPost, path, payload, nil)
}
