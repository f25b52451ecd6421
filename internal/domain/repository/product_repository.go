package repository

import (
	"context"

	"effettobot/internal/domain/entity"
)

// Name lookups are case-insensitive throughout: existence checks, duplicate
// rejection and review-flow validation all match on the lowercased name.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Exists(ctx context.Context, name string) (bool, error)
}
