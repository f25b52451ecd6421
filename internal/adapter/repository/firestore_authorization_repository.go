package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/pkg/errors"
)

// Documents are keyed by user id, which makes the storage layer itself
// enforce the one-entry-per-user invariant.
type firestoreAuthorizationRepository struct {
	client *firestore.Client
}

func NewFirestoreAuthorizationRepository(client *firestore.Client) repository.AuthorizationRepository {
	return &firestoreAuthorizationRepository{
		client: client,
	}
}

func (r *firestoreAuthorizationRepository) Upsert(ctx context.Context, auth *entity.ReviewAuthorization) error {
	auth.CreatedAt = time.Now()

	_, err := r.client.Collection("review_authorizations").Doc(auth.UserID).Set(ctx, auth)
	if err != nil {
		return errors.Internal("Failed to save authorization", err)
	}

	return nil
}

func (r *firestoreAuthorizationRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.client.Collection("review_authorizations").Doc(userID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete authorization", err)
	}

	return nil
}

func (r *firestoreAuthorizationRepository) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := r.client.Collection("review_authorizations").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to get authorization", err)
	}

	return true, nil
}
