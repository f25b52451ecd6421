package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/pkg/errors"
)

// Catalog listings are cached for five minutes. Catalog writes are rare
// administrative actions, so the staleness window only matters after a
// local add/remove, and those invalidate the cache immediately.
const catalogCacheTTL = 5 * time.Minute

type CatalogUseCase struct {
	productRepo repository.ProductRepository

	mu       sync.Mutex
	cached   []*entity.Product
	cachedAt time.Time
}

func NewCatalogUseCase(productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
	}
}

type AddProductInput struct {
	Name  string  `validate:"required,max=100"`
	Price float64 `validate:"omitempty,gt=0"`
	Emoji string  `validate:"max=16"`
}

func (uc *CatalogUseCase) AddProduct(ctx context.Context, input AddProductInput) (*entity.Product, error) {
	if err := validate.Struct(&input); err != nil {
		return nil, errors.BadRequest("Invalid product data", err)
	}

	exists, err := uc.productRepo.Exists(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflict(fmt.Sprintf("Product %q already exists!", input.Name))
	}

	product := &entity.Product{
		Name:  input.Name,
		Price: input.Price,
		Emoji: input.Emoji,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.invalidate()
	return product, nil
}

func (uc *CatalogUseCase) RemoveProduct(ctx context.Context, name string) error {
	exists, err := uc.productRepo.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFoundMsg(fmt.Sprintf("Product %q does not exist!", name))
	}

	if err := uc.productRepo.Delete(ctx, name); err != nil {
		return err
	}

	uc.invalidate()
	return nil
}

// List serves from the time-boxed cache when it is still warm.
func (uc *CatalogUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	uc.mu.Lock()
	if uc.cached != nil && time.Since(uc.cachedAt) < catalogCacheTTL {
		products := uc.cached
		uc.mu.Unlock()
		return products, nil
	}
	uc.mu.Unlock()

	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.cached = products
	uc.cachedAt = time.Now()
	uc.mu.Unlock()

	return products, nil
}

func (uc *CatalogUseCase) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return uc.productRepo.GetByName(ctx, name)
}

func (uc *CatalogUseCase) Exists(ctx context.Context, name string) (bool, error) {
	return uc.productRepo.Exists(ctx, name)
}

func (uc *CatalogUseCase) invalidate() {
	uc.mu.Lock()
	uc.cached = nil
	uc.cachedAt = time.Time{}
	uc.mu.Unlock()
}
