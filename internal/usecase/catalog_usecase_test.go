package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effettobot/pkg/errors"
)

func TestAddProduct(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewCatalogUseCase(repo)
	ctx := context.Background()

	product, err := uc.AddProduct(ctx, AddProductInput{Name: "Logo Design", Price: 49.99, Emoji: "🎨"})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "logo design", product.NameLower)
}

func TestAddProductDuplicateCaseInsensitive(t *testing.T) {
	uc := NewCatalogUseCase(newFakeProductRepo())
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, AddProductInput{Name: "Logo Design"})
	require.NoError(t, err)

	_, err = uc.AddProduct(ctx, AddProductInput{Name: "LOGO DESIGN"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAddProductValidation(t *testing.T) {
	uc := NewCatalogUseCase(newFakeProductRepo())
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, AddProductInput{Name: ""})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.AddProduct(ctx, AddProductInput{Name: strings.Repeat("x", 101)})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.AddProduct(ctx, AddProductInput{Name: "Logo", Price: -5})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRemoveProductMissing(t *testing.T) {
	uc := NewCatalogUseCase(newFakeProductRepo())

	err := uc.RemoveProduct(context.Background(), "Ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListSortedAndCached(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewCatalogUseCase(repo)
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, AddProductInput{Name: "banner"})
	require.NoError(t, err)
	_, err = uc.AddProduct(ctx, AddProductInput{Name: "Avatar"})
	require.NoError(t, err)

	products, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Avatar", products[0].Name)
	assert.Equal(t, "banner", products[1].Name)

	calls := repo.listCalls
	_, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, calls, repo.listCalls, "second listing should come from the cache")
}

func TestWritesInvalidateCache(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewCatalogUseCase(repo)
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, AddProductInput{Name: "Logo"})
	require.NoError(t, err)
	_, err = uc.List(ctx)
	require.NoError(t, err)

	_, err = uc.AddProduct(ctx, AddProductInput{Name: "Banner"})
	require.NoError(t, err)

	products, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	require.NoError(t, uc.RemoveProduct(ctx, "logo"))

	products, err = uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Banner", products[0].Name)
}
