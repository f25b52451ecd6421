package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/service"
	"effettobot/internal/usecase"
	"effettobot/pkg/errors"
	"effettobot/pkg/response"
)

type stubReviewRepo struct {
	reviews []*entity.Review
}

func (r *stubReviewRepo) Create(ctx context.Context, review *entity.Review) error { return nil }
func (r *stubReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return nil, errors.NotFound("Review", nil)
}
func (r *stubReviewRepo) ListByStatus(ctx context.Context, status entity.ReviewStatus) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.Status == status {
			out = append(out, review)
		}
	}
	return out, nil
}
func (r *stubReviewRepo) ListApprovedByProduct(ctx context.Context, productName string) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.Status == entity.ReviewApproved && review.ProductName == productName {
			out = append(out, review)
		}
	}
	return out, nil
}
func (r *stubReviewRepo) Decide(ctx context.Context, id string, decision entity.ReviewStatus, decidedBy string) (*entity.Review, error) {
	return nil, errors.NotFound("Review", nil)
}

type stubProductRepo struct {
	products []*entity.Product
}

func (r *stubProductRepo) Create(ctx context.Context, product *entity.Product) error { return nil }
func (r *stubProductRepo) Delete(ctx context.Context, name string) error             { return nil }
func (r *stubProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return nil, errors.NotFound("Product", nil)
}
func (r *stubProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.products, nil
}
func (r *stubProductRepo) Exists(ctx context.Context, name string) (bool, error) {
	return false, nil
}

type nopPlatform struct{}

func (nopPlatform) CreateChannel(ctx context.Context, name, parentID string, overwrites []service.PermissionOverwrite) (string, error) {
	return "", nil
}
func (nopPlatform) DeleteChannel(ctx context.Context, channelID string) error { return nil }
func (nopPlatform) Send(ctx context.Context, channelID string, msg service.OutboundMessage) (string, error) {
	return "", nil
}
func (nopPlatform) EditMessage(ctx context.Context, channelID, messageID string, msg service.OutboundMessage) error {
	return nil
}
func (nopPlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error { return nil }
func (nopPlatform) FetchHistory(ctx context.Context, channelID string, limit int) ([]service.HistoryMessage, error) {
	return nil, nil
}
func (nopPlatform) React(ctx context.Context, channelID, messageID, emoji string) error { return nil }
func (nopPlatform) GrantRole(ctx context.Context, userID, roleID string) error          { return nil }
func (nopPlatform) RevokeRole(ctx context.Context, userID, roleID string) error         { return nil }

type nopAuthRepo struct{}

func (nopAuthRepo) Upsert(ctx context.Context, auth *entity.ReviewAuthorization) error { return nil }
func (nopAuthRepo) Delete(ctx context.Context, userID string) error                    { return nil }
func (nopAuthRepo) Exists(ctx context.Context, userID string) (bool, error)            { return false, nil }

type nopConfigRepo struct{}

func (nopConfigRepo) Set(ctx context.Context, key, value string) error { return nil }
func (nopConfigRepo) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}
func (nopConfigRepo) GetAll(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func newTestRouter(reviews []*entity.Review, products []*entity.Product) http.Handler {
	configUC := usecase.NewConfigUseCase(nopConfigRepo{})
	catalogUC := usecase.NewCatalogUseCase(&stubProductRepo{products: products})
	authUC := usecase.NewAuthorizationUseCase(nopAuthRepo{}, configUC, nopPlatform{})
	sessions := usecase.NewSessionStore(time.Minute)
	reviewUC := usecase.NewReviewUseCase(&stubReviewRepo{reviews: reviews}, catalogUC, authUC, configUC, sessions, nopPlatform{})

	return NewRouter(NewOpsHandler(reviewUC, catalogUC))
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestListReviewsByStatus(t *testing.T) {
	reviews := []*entity.Review{
		{ID: "r1", ProductName: "Logo", Status: entity.ReviewPending},
		{ID: "r2", ProductName: "Logo", Status: entity.ReviewApproved},
	}
	router := newTestRouter(reviews, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reviews?status=approved", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "r2")
	assert.NotContains(t, rec.Body.String(), "r1")
}

func TestListReviewsDefaultsToPending(t *testing.T) {
	reviews := []*entity.Review{
		{ID: "r1", ProductName: "Logo", Status: entity.ReviewPending},
		{ID: "r2", ProductName: "Logo", Status: entity.ReviewApproved},
	}
	router := newTestRouter(reviews, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reviews", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "r1")
	assert.NotContains(t, rec.Body.String(), "r2")
}

func TestListReviewsUnknownStatus(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reviews?status=bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProducts(t *testing.T) {
	products := []*entity.Product{{ID: "p1", Name: "Logo Design", Price: 50}}
	router := newTestRouter(nil, products)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logo Design")
}
