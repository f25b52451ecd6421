package dispatch

import (
	"context"
	"fmt"
	"time"

	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
)

func embedMessage(title, description string, color int) service.OutboundMessage {
	now := time.Now()
	return service.OutboundMessage{
		Embeds: []service.Embed{{
			Title:       title,
			Description: description,
			Color:       color,
			Timestamp:   &now,
		}},
	}
}

func (d *Dispatcher) handleTicketCommand(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	ticket, err := d.ticketUC.Open(ctx, ic.User.ID, ic.User.Username)
	if err != nil {
		return err
	}

	return r.Reply(ctx, service.OutboundMessage{
		Content: fmt.Sprintf("✅ Your ticket has been created: <#%s>", ticket.ChannelID),
	}, true)
}

func (d *Dispatcher) handleClaim(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if _, err := d.ticketUC.Claim(ctx, ic.ChannelID, ic.User.ID); err != nil {
		return err
	}

	msg := embedMessage("✅ Ticket Claimed",
		fmt.Sprintf("This ticket has been claimed by <@%s>", ic.User.ID), 0x00ff00)
	return r.Reply(ctx, msg, false)
}

func (d *Dispatcher) handleClose(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if _, err := d.ticketUC.Close(ctx, ic.ChannelID, ic.User.ID, ic.User.Username); err != nil {
		return err
	}

	msg := embedMessage("🔒 Ticket Closed",
		"This ticket has been closed and a transcript has been generated. Use the button below to delete the channel when ready.", 0xff6b6b)
	msg.Rows = []service.ActionRow{{
		Buttons: []service.Button{{
			CustomID: "delete_ticket_channel",
			Label:    "Delete Channel",
			Style:    service.ButtonDanger,
			Emoji:    "🗑️",
		}},
	}}
	return r.Reply(ctx, msg, false)
}

func (d *Dispatcher) handleReopen(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if _, err := d.ticketUC.Reopen(ctx, ic.ChannelID); err != nil {
		return err
	}

	msg := embedMessage("🔓 Ticket Reopened",
		fmt.Sprintf("This ticket has been reopened by <@%s>", ic.User.ID), 0x00ff00)
	return r.Reply(ctx, msg, false)
}

func (d *Dispatcher) handleDeleteTicketChannel(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.ManageChannels {
		return errors.Forbidden("You do not have permission to delete this channel.", nil)
	}

	if err := d.ticketUC.ScheduleChannelDeletion(ctx, ic.ChannelID); err != nil {
		return err
	}

	msg := embedMessage("🗑️ Channel Deletion Confirmed",
		"This ticket channel will be deleted in 5 seconds...", 0xff6b6b)
	return r.Reply(ctx, msg, false)
}
