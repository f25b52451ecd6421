package entity

import (
	"time"
)

type TicketStatus string

const (
	TicketOpen    TicketStatus = "open"
	TicketClaimed TicketStatus = "claimed"
	TicketClosed  TicketStatus = "closed"
)

// Ticket is a support session bound one-to-one with a dedicated channel.
// The record outlives the channel: deleting the channel never deletes it.
type Ticket struct {
	ID        string       `json:"id" firestore:"id"`
	ChannelID string       `json:"channel_id" firestore:"channelId"`
	UserID    string       `json:"user_id" firestore:"userId"`
	ClaimedBy string       `json:"claimed_by,omitempty" firestore:"claimedBy,omitempty"`
	Status    TicketStatus `json:"status" firestore:"status"`
	CreatedAt time.Time    `json:"created_at" firestore:"createdAt"`
	ClosedAt  *time.Time   `json:"closed_at,omitempty" firestore:"closedAt,omitempty"`
}
