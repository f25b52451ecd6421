package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/pkg/errors"

	"github.com/google/uuid"
)

type firestoreTicketRepository struct {
	client *firestore.Client
}

func NewFirestoreTicketRepository(client *firestore.Client) repository.TicketRepository {
	return &firestoreTicketRepository{
		client: client,
	}
}

func (r *firestoreTicketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}

	ticket.Status = entity.TicketOpen
	ticket.CreatedAt = time.Now()

	_, err := r.client.Collection("tickets").Doc(ticket.ID).Set(ctx, ticket)
	if err != nil {
		return errors.Internal("Failed to create ticket", err)
	}

	return nil
}

func (r *firestoreTicketRepository) GetByChannel(ctx context.Context, channelID string) (*entity.Ticket, error) {
	query := r.client.Collection("tickets").Where("channelId", "==", channelID).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFoundMsg("This is not a valid ticket channel!")
		}
		return nil, errors.Internal("Failed to query ticket", err)
	}

	var ticket entity.Ticket
	if err := doc.DataTo(&ticket); err != nil {
		return nil, errors.Internal("Failed to parse ticket data", err)
	}

	return &ticket, nil
}

func (r *firestoreTicketRepository) GetOpenByUser(ctx context.Context, userID string) (*entity.Ticket, error) {
	// A claimed ticket still counts as the user's active ticket.
	query := r.client.Collection("tickets").
		Where("userId", "==", userID).
		Where("status", "in", []string{string(entity.TicketOpen), string(entity.TicketClaimed)}).
		Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Open ticket", nil)
		}
		return nil, errors.Internal("Failed to query tickets", err)
	}

	var ticket entity.Ticket
	if err := doc.DataTo(&ticket); err != nil {
		return nil, errors.Internal("Failed to parse ticket data", err)
	}

	return &ticket, nil
}

// Transition runs the precondition check and the status write in one
// Firestore transaction, so a stale read can never let two staff members
// claim or close the same ticket.
func (r *firestoreTicketRepository) Transition(ctx context.Context, channelID string, tr repository.TicketTransition) (*entity.Ticket, error) {
	var updated entity.Ticket

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.client.Collection("tickets").Where("channelId", "==", channelID).Limit(1)
		iter := tx.Documents(query)
		defer iter.Stop()

		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				return errors.NotFoundMsg("This is not a valid ticket channel!")
			}
			return errors.Internal("Failed to query ticket", err)
		}

		var ticket entity.Ticket
		if err := doc.DataTo(&ticket); err != nil {
			return errors.Internal("Failed to parse ticket data", err)
		}

		if !statusIn(ticket.Status, tr.From) {
			return errors.Conflict(wrongStateMessage(tr.To, &ticket))
		}
		if tr.RequireUnclaimed && ticket.ClaimedBy != "" {
			return errors.Conflict(fmt.Sprintf("This ticket is already claimed by <@%s>!", ticket.ClaimedBy))
		}

		ticket.Status = tr.To
		if tr.ClaimedBy != "" {
			ticket.ClaimedBy = tr.ClaimedBy
		}
		if tr.StampClosedAt {
			now := time.Now()
			ticket.ClosedAt = &now
		}

		updated = ticket
		return tx.Set(doc.Ref, &ticket)
	})

	if err != nil {
		if _, ok := errors.AsApp(err); ok {
			return nil, err
		}
		return nil, errors.Internal("Failed to update ticket", err)
	}

	return &updated, nil
}

func statusIn(status entity.TicketStatus, set []entity.TicketStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func wrongStateMessage(to entity.TicketStatus, ticket *entity.Ticket) string {
	switch to {
	case entity.TicketClaimed:
		return "This ticket is not open!"
	case entity.TicketClosed:
		return "This ticket is already closed!"
	case entity.TicketOpen:
		return "This ticket is not closed!"
	}
	return fmt.Sprintf("Ticket is in state %q", ticket.Status)
}
