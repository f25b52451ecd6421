package repository

import (
	"context"

	"effettobot/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByStatus(ctx context.Context, status entity.ReviewStatus) ([]*entity.Review, error)
	ListApprovedByProduct(ctx context.Context, productName string) ([]*entity.Review, error)
	// Decide moves a review from pending to the given decision, stamping the
	// deciding admin and timestamp, in one atomic conditional update. A
	// review that is no longer pending yields a conflict, never a silent
	// overwrite of the first decision.
	Decide(ctx context.Context, id string, decision entity.ReviewStatus, decidedBy string) (*entity.Review, error)
}
