package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter wires the ops endpoints onto a fresh echo instance.
func NewRouter(ops *OpsHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", ops.Health)

	v1 := e.Group("/v1")
	v1.GET("/reviews", ops.ListReviews)
	v1.GET("/products", ops.ListProducts)

	return e
}
