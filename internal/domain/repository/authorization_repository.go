package repository

import (
	"context"

	"effettobot/internal/domain/entity"
)

type AuthorizationRepository interface {
	Upsert(ctx context.Context, auth *entity.ReviewAuthorization) error
	Delete(ctx context.Context, userID string) error
	Exists(ctx context.Context, userID string) (bool, error)
}
