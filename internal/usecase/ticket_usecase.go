package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
	"effettobot/pkg/logger"
)

// channelDeleteGrace is how long the confirmation stays visible before the
// channel is destroyed.
const channelDeleteGrace = 5 * time.Second

type TicketUseCase struct {
	ticketRepo  repository.TicketRepository
	configUC    *ConfigUseCase
	platform    service.ChatPlatform
	staffRoleID string
	deleteGrace time.Duration
}

func NewTicketUseCase(
	ticketRepo repository.TicketRepository,
	configUC *ConfigUseCase,
	platform service.ChatPlatform,
	staffRoleID string,
) *TicketUseCase {
	return &TicketUseCase{
		ticketRepo:  ticketRepo,
		configUC:    configUC,
		platform:    platform,
		staffRoleID: staffRoleID,
		deleteGrace: channelDeleteGrace,
	}
}

// Open provisions a ticket channel visible only to the requester and staff,
// persists the record and posts the claim/close/reopen control panel into
// the new channel. A user with an open ticket anywhere is rejected before
// any side effect.
func (uc *TicketUseCase) Open(ctx context.Context, userID, username string) (*entity.Ticket, error) {
	if _, err := uc.ticketRepo.GetOpenByUser(ctx, userID); err == nil {
		return nil, errors.Conflict("You already have an open ticket! Please wait for it to be resolved before opening a new one.")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	categoryID, err := uc.configUC.Get(ctx, entity.ConfigTicketCategory)
	if err != nil {
		return nil, err
	}

	overwrites := []service.PermissionOverwrite{
		{Everyone: true, Allow: false},
		{TargetID: userID, Allow: true},
	}
	if uc.staffRoleID != "" {
		overwrites = append(overwrites, service.PermissionOverwrite{
			TargetID: uc.staffRoleID,
			Role:     true,
			Allow:    true,
		})
	}

	channelName := "ticket-" + strings.ToLower(username)
	channelID, err := uc.platform.CreateChannel(ctx, channelName, categoryID, overwrites)
	if err != nil {
		return nil, errors.Internal("Failed to create ticket channel", err)
	}

	ticket := &entity.Ticket{
		ChannelID: channelID,
		UserID:    userID,
	}
	if err := uc.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if _, err := uc.platform.Send(ctx, channelID, ticketControlPanel(userID, channelID)); err != nil {
		logger.LogDeliveryError(channelID, "ticket_control_panel", err)
	}

	return ticket, nil
}

func (uc *TicketUseCase) Claim(ctx context.Context, channelID, staffID string) (*entity.Ticket, error) {
	return uc.ticketRepo.Transition(ctx, channelID, repository.TicketTransition{
		From:             []entity.TicketStatus{entity.TicketOpen},
		To:               entity.TicketClaimed,
		ClaimedBy:        staffID,
		RequireUnclaimed: true,
	})
}

// Close transitions the ticket and then archives a transcript. Transcript
// and archival failures are isolated: the ticket stays closed and only the
// delivery step degrades.
func (uc *TicketUseCase) Close(ctx context.Context, channelID, closedByID, closedByName string) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepo.Transition(ctx, channelID, repository.TicketTransition{
		From:          []entity.TicketStatus{entity.TicketOpen, entity.TicketClaimed},
		To:            entity.TicketClosed,
		StampClosedAt: true,
	})
	if err != nil {
		return nil, err
	}

	uc.archiveTranscript(ctx, ticket, closedByID, closedByName)
	return ticket, nil
}

func (uc *TicketUseCase) Reopen(ctx context.Context, channelID string) (*entity.Ticket, error) {
	// Reopening leaves claimedBy and closedAt untouched.
	return uc.ticketRepo.Transition(ctx, channelID, repository.TicketTransition{
		From: []entity.TicketStatus{entity.TicketClosed},
		To:   entity.TicketOpen,
	})
}

// ScheduleChannelDeletion destroys the channel after the grace delay. The
// ticket record itself is never deleted.
func (uc *TicketUseCase) ScheduleChannelDeletion(ctx context.Context, channelID string) error {
	if _, err := uc.ticketRepo.GetByChannel(ctx, channelID); err != nil {
		return err
	}

	time.AfterFunc(uc.deleteGrace, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.platform.DeleteChannel(ctx, channelID); err != nil {
			logger.LogDeliveryError(channelID, "delete_ticket_channel", err)
		}
	})

	return nil
}

func (uc *TicketUseCase) archiveTranscript(ctx context.Context, ticket *entity.Ticket, closedByID, closedByName string) {
	archiveChannelID, err := uc.configUC.Get(ctx, entity.ConfigTranscriptChannel)
	if err != nil || archiveChannelID == "" {
		if err != nil {
			logger.LogDeliveryError(ticket.ChannelID, "transcript_channel_lookup", err)
		}
		return
	}

	var file *service.FileAttachment
	msgs, err := uc.platform.FetchHistory(ctx, ticket.ChannelID, transcriptFetchLimit)
	if err != nil {
		logger.LogDeliveryError(ticket.ChannelID, "transcript_fetch", err)
	} else {
		data := buildHTMLTranscript(ticket, closedByName, msgs)
		name := fmt.Sprintf("ticket-%s-transcript.html", ticket.ID)
		if len(data) > maxTranscriptBytes {
			data = buildTextTranscript(ticket, closedByName, msgs)
			name = fmt.Sprintf("ticket-%s-transcript.md", ticket.ID)
		}
		file = &service.FileAttachment{Name: name, Data: data}
	}

	msg := service.OutboundMessage{Embeds: []service.Embed{transcriptEmbed(ticket, closedByID, file == nil)}}
	if file != nil {
		msg.Files = []service.FileAttachment{*file}
	}

	if _, err := uc.platform.Send(ctx, archiveChannelID, msg); err != nil {
		logger.LogDeliveryError(archiveChannelID, "transcript_send", err)
	}
}

func transcriptEmbed(ticket *entity.Ticket, closedByID string, degraded bool) service.Embed {
	now := time.Now()
	embed := service.Embed{
		Title: "📄 Ticket Transcript",
		Color: 0xff6b6b,
		Fields: []service.EmbedField{
			{Name: "Ticket ID", Value: ticket.ID, Inline: true},
			{Name: "User", Value: fmt.Sprintf("<@%s>", ticket.UserID), Inline: true},
			{Name: "Closed by", Value: fmt.Sprintf("<@%s>", closedByID), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:F>", ticket.CreatedAt.Unix()), Inline: true},
			{Name: "Closed", Value: fmt.Sprintf("<t:%d:F>", now.Unix()), Inline: true},
		},
		Timestamp: &now,
	}
	if ticket.ClaimedBy != "" {
		embed.Fields = append(embed.Fields, service.EmbedField{
			Name: "Claimed by", Value: fmt.Sprintf("<@%s>", ticket.ClaimedBy), Inline: true,
		})
	}
	if degraded {
		embed.Description = "⚠️ Transcript generation failed; the ticket was closed without an export."
	}
	return embed
}

func ticketControlPanel(userID, channelID string) service.OutboundMessage {
	now := time.Now()
	return service.OutboundMessage{
		Embeds: []service.Embed{{
			Title:       "🎫 Support Ticket",
			Color:       0x770380,
			Description: fmt.Sprintf("Hello <@%s>! Your support ticket has been created. Please describe your issue and our staff will assist you shortly.", userID),
			Fields: []service.EmbedField{
				{Name: "Ticket ID", Value: channelID, Inline: true},
				{Name: "Created", Value: fmt.Sprintf("<t:%d:F>", now.Unix()), Inline: true},
			},
			FooterText: "Use the buttons below to manage your ticket",
			Timestamp:  &now,
		}},
		Rows: []service.ActionRow{{
			Buttons: []service.Button{
				{CustomID: "claim_ticket", Label: "Claim", Style: service.ButtonPrimary, Emoji: "👤"},
				{CustomID: "close_ticket", Label: "Close", Style: service.ButtonDanger, Emoji: "🔒"},
				{CustomID: "reopen_ticket", Label: "Reopen", Style: service.ButtonSuccess, Emoji: "🔓"},
			},
		}},
	}
}
