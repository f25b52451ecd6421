package api

import (
	"github.com/labstack/echo/v4"

	"effettobot/internal/domain/entity"
	"effettobot/internal/usecase"
	"effettobot/pkg/errors"
	"effettobot/pkg/response"
)

// OpsHandler exposes the read-only operational surface: a health probe and
// inspection endpoints for reviews and the product catalog.
type OpsHandler struct {
	reviewUC  *usecase.ReviewUseCase
	catalogUC *usecase.CatalogUseCase
}

func NewOpsHandler(reviewUC *usecase.ReviewUseCase, catalogUC *usecase.CatalogUseCase) *OpsHandler {
	return &OpsHandler{
		reviewUC:  reviewUC,
		catalogUC: catalogUC,
	}
}

func (h *OpsHandler) Health(c echo.Context) error {
	return response.Success(c, map[string]string{"status": "ok"})
}

// ListReviews filters by status (default pending) or, with the product
// query parameter, returns the approved reviews for one product.
func (h *OpsHandler) ListReviews(c echo.Context) error {
	if product := c.QueryParam("product"); product != "" {
		reviews, err := h.reviewUC.ListApprovedByProduct(c.Request().Context(), product)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, reviews)
	}

	status := entity.ReviewStatus(c.QueryParam("status"))
	if status == "" {
		status = entity.ReviewPending
	}
	switch status {
	case entity.ReviewPending, entity.ReviewApproved, entity.ReviewRejected:
	default:
		return response.Error(c, errors.BadRequest("Unknown review status", nil))
	}

	reviews, err := h.reviewUC.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

func (h *OpsHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}
