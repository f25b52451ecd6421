package entity

import (
	"time"
)

// DefaultProductEmoji is shown wherever a product has no emoji of its own.
const DefaultProductEmoji = "📦"

type Product struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
	// NameLower backs the case-insensitive uniqueness and lookup queries.
	NameLower string    `json:"-" firestore:"nameLower"`
	Price     float64   `json:"price,omitempty" firestore:"price,omitempty"`
	Emoji     string    `json:"emoji,omitempty" firestore:"emoji,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// DisplayEmoji falls back to the default so a product without an emoji
// never breaks listings or the review flow.
func (p *Product) DisplayEmoji() string {
	if p.Emoji == "" {
		return DefaultProductEmoji
	}
	return p.Emoji
}
