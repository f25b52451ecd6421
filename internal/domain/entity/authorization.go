package entity

import (
	"time"
)

// ReviewAuthorization marks a user as allowed to submit reviews. A user is
// either authorized (exactly one entry, keyed by user id) or not.
type ReviewAuthorization struct {
	UserID       string    `json:"user_id" firestore:"userId"`
	AuthorizedBy string    `json:"authorized_by" firestore:"authorizedBy"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
