package dispatch

import (
	"context"
	"time"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/service"
	"effettobot/internal/usecase"
	"effettobot/pkg/errors"
	"effettobot/pkg/logger"
)

const genericErrorNotice = "❌ An error occurred while processing your request."

type handlerFunc func(ctx context.Context, ic *Interaction, r service.InteractionResponder) error

// Dispatcher routes normalized interactions to the workflow handlers and is
// the single place where component errors become user-facing text. Every
// interaction is acknowledged exactly once.
type Dispatcher struct {
	ticketUC  *usecase.TicketUseCase
	reviewUC  *usecase.ReviewUseCase
	catalogUC *usecase.CatalogUseCase
	authUC    *usecase.AuthorizationUseCase
	configUC  *usecase.ConfigUseCase
	platform  service.ChatPlatform

	commands map[string]handlerFunc
	buttons  map[string]handlerFunc
	menus    map[string]handlerFunc
	modals   map[string]handlerFunc
}

func NewDispatcher(
	ticketUC *usecase.TicketUseCase,
	reviewUC *usecase.ReviewUseCase,
	catalogUC *usecase.CatalogUseCase,
	authUC *usecase.AuthorizationUseCase,
	configUC *usecase.ConfigUseCase,
	platform service.ChatPlatform,
) *Dispatcher {
	d := &Dispatcher{
		ticketUC:  ticketUC,
		reviewUC:  reviewUC,
		catalogUC: catalogUC,
		authUC:    authUC,
		configUC:  configUC,
		platform:  platform,
	}

	d.commands = map[string]handlerFunc{
		"setup":             d.handleSetup,
		"ticket":            d.handleTicketCommand,
		"claim":             d.handleClaim,
		"close":             d.handleClose,
		"reopen":            d.handleReopen,
		"review":            d.handleReviewCommand,
		"reviews":           d.handleReviewsCommand,
		"addproduct":        d.handleAddProduct,
		"removeproduct":     d.handleRemoveProduct,
		"listproducts":      d.handleListProducts,
		"authorizereview":   d.handleAuthorizeReview,
		"deauthorizereview": d.handleDeauthorizeReview,
		"paypal":            d.handlePaypal,
		"help":              d.handleHelp,
	}
	d.buttons = map[string]handlerFunc{
		"open_ticket":           d.handleTicketCommand,
		"claim_ticket":          d.handleClaim,
		"close_ticket":          d.handleClose,
		"reopen_ticket":         d.handleReopen,
		"delete_ticket_channel": d.handleDeleteTicketChannel,
		"approve_review":        d.handleApproveReview,
		"reject_review":         d.handleRejectReview,
	}
	d.menus = map[string]handlerFunc{
		"select_product": d.handleProductSelection,
		"select_rating":  d.handleRatingSelection,
	}
	d.modals = map[string]handlerFunc{
		"review_phase1_modal": d.handleReviewPhase1,
		"review_phase2_modal": d.handleReviewPhase2,
		"review_phase3_modal": d.handleReviewPhase3,
	}

	return d
}

// Dispatch is the boundary: it resolves the handler, runs it, and turns any
// failure into exactly one acknowledgement.
func (d *Dispatcher) Dispatch(ctx context.Context, ic *Interaction, r service.InteractionResponder) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Panic handling interaction: %v", rec)
			d.apologize(ctx, r)
		}
	}()

	handler := d.resolve(ic)
	if handler == nil {
		logger.Warn("No handler for interaction: kind=%d command=%q customId=%q", ic.Kind, ic.CommandName, ic.CustomID)
		d.apologize(ctx, r)
		return
	}

	if err := handler(ctx, ic, r); err != nil {
		d.replyError(ctx, r, err)
		return
	}

	if !r.Replied() {
		// A handler must acknowledge; this is the safety net for the
		// platform's exactly-once requirement.
		logger.Warn("Handler left interaction unacknowledged: command=%q customId=%q", ic.CommandName, ic.CustomID)
		d.reply(ctx, r, "✅ Done!", true)
	}
}

func (d *Dispatcher) resolve(ic *Interaction) handlerFunc {
	switch ic.Kind {
	case KindCommand:
		return d.commands[ic.CommandName]
	case KindButton:
		key, _ := customIDKey(ic.CustomID)
		return d.buttons[key]
	case KindMenu:
		key, _ := customIDKey(ic.CustomID)
		return d.menus[key]
	case KindModal:
		key, _ := customIDKey(ic.CustomID)
		return d.modals[key]
	}
	return nil
}

// HandleMessage polices the configured ticket channel: plain chatter is
// deleted and answered with a short-lived warning pointing at /ticket.
func (d *Dispatcher) HandleMessage(ctx context.Context, channelID, messageID, authorID, content string, bot bool) {
	if bot {
		return
	}

	ticketChannelID, err := d.configUC.Get(ctx, entity.ConfigTicketChannel)
	if err != nil || ticketChannelID == "" || channelID != ticketChannelID {
		return
	}

	if err := d.platform.DeleteMessage(ctx, channelID, messageID); err != nil {
		logger.LogDeliveryError(channelID, "ticket_channel_message_delete", err)
		return
	}

	warningID, err := d.platform.Send(ctx, channelID, service.OutboundMessage{
		Content: "❌ <@" + authorID + ">, please use the `/ticket` command or the button above to open a ticket. Regular messages are not allowed in this channel.",
	})
	if err != nil {
		logger.LogDeliveryError(channelID, "ticket_channel_warning", err)
		return
	}

	time.AfterFunc(5*time.Second, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := d.platform.DeleteMessage(ctx, channelID, warningID); err != nil {
			logger.LogDeliveryError(channelID, "ticket_channel_warning_delete", err)
		}
	})
}

// replyError translates typed component failures into specific private
// notices; anything untyped gets the generic apology.
func (d *Dispatcher) replyError(ctx context.Context, r service.InteractionResponder, err error) {
	if appErr, ok := errors.AsApp(err); ok && appErr.Code != "INTERNAL_ERROR" {
		d.reply(ctx, r, "❌ "+appErr.Message, true)
		return
	}
	logger.Error("Interaction handler failed: %v", err)
	d.apologize(ctx, r)
}

func (d *Dispatcher) apologize(ctx context.Context, r service.InteractionResponder) {
	d.reply(ctx, r, genericErrorNotice, true)
}

func (d *Dispatcher) reply(ctx context.Context, r service.InteractionResponder, content string, ephemeral bool) {
	if err := r.Reply(ctx, service.OutboundMessage{Content: content}, ephemeral); err != nil {
		logger.Error("Failed to acknowledge interaction: %v", err)
	}
}
