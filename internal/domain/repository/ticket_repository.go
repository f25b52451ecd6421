package repository

import (
	"context"

	"effettobot/internal/domain/entity"
)

// TicketTransition describes one conditional status change. The repository
// must apply it atomically: the read of the current status and the write of
// the new one happen in a single storage transaction, so two racing staff
// actions cannot both pass the precondition.
type TicketTransition struct {
	From []entity.TicketStatus
	To   entity.TicketStatus
	// ClaimedBy is stamped when non-empty. RequireUnclaimed rejects the
	// transition when the ticket already carries a claimer.
	ClaimedBy        string
	RequireUnclaimed bool
	// StampClosedAt sets the closed timestamp. Reopen leaves both the
	// claimer and the closed timestamp untouched.
	StampClosedAt bool
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByChannel(ctx context.Context, channelID string) (*entity.Ticket, error)
	GetOpenByUser(ctx context.Context, userID string) (*entity.Ticket, error)
	Transition(ctx context.Context, channelID string, tr TicketTransition) (*entity.Ticket, error)
}
