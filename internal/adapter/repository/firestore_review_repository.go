package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/pkg/errors"

	"github.com/google/uuid"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	review.Status = entity.ReviewPending
	review.CreatedAt = time.Now()

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.client.Collection("reviews").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) ListByStatus(ctx context.Context, reviewStatus entity.ReviewStatus) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").
		Where("status", "==", string(reviewStatus)).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreReviewRepository) ListApprovedByProduct(ctx context.Context, productName string) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").
		Where("productName", "==", productName).
		Where("status", "==", string(entity.ReviewApproved))
	return r.collect(ctx, query)
}

// Decide is the single write path for review decisions. The pending check
// and the decision write share one transaction, so a second approve or
// reject observes the first and is rejected instead of overwriting the
// decision timestamp.
func (r *firestoreReviewRepository) Decide(ctx context.Context, id string, decision entity.ReviewStatus, decidedBy string) (*entity.Review, error) {
	var updated entity.Review

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("reviews").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Review", err)
			}
			return errors.Internal("Failed to get review", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return errors.Internal("Failed to parse review data", err)
		}

		if review.Status != entity.ReviewPending {
			return errors.Conflict("This review has already been decided!")
		}

		now := time.Now()
		review.Status = decision
		review.DecidedBy = decidedBy
		review.DecidedAt = &now

		updated = review
		return tx.Set(docRef, &review)
	})

	if err != nil {
		if _, ok := errors.AsApp(err); ok {
			return nil, err
		}
		return nil, errors.Internal("Failed to update review", err)
	}

	return &updated, nil
}

func (r *firestoreReviewRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Review, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var reviews []*entity.Review
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}
