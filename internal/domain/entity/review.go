package entity

import (
	"time"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

const (
	ReviewRatingMin = 0.5
	ReviewRatingMax = 5.0
	// Ratings move in half-star increments.
	ReviewRatingStep = 0.5

	ReviewDescriptionMaxLen = 1000
)

// Review is a rated, described submission about a catalog product. The
// product name is validated against the catalog at submission time but is
// not a foreign key; approved reviews are the only ones shown publicly.
type Review struct {
	ID          string       `json:"id" firestore:"id"`
	UserID      string       `json:"user_id" firestore:"userId"`
	Username    string       `json:"username" firestore:"username"`
	ProductName string       `json:"product_name" firestore:"productName"`
	Rating      float64      `json:"rating" firestore:"rating"`
	Description string       `json:"description" firestore:"description"`
	Status      ReviewStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time    `json:"created_at" firestore:"createdAt"`
	DecidedBy   string       `json:"decided_by,omitempty" firestore:"decidedBy,omitempty"`
	DecidedAt   *time.Time   `json:"decided_at,omitempty" firestore:"decidedAt,omitempty"`
}

// Stars renders the rating as full stars plus one for the half step, the
// same presentation the submitter sees in confirmations.
func (r *Review) Stars() string {
	full := int(r.Rating)
	stars := ""
	for i := 0; i < full; i++ {
		stars += "⭐"
	}
	if r.Rating-float64(full) >= ReviewRatingStep {
		stars += "⭐"
	}
	return stars
}
