package handler

import (
	"net/http"

	"phonemall-payments/internal/dto"
	"phonemall-payments/internal/money"
	"phonemall-payments/internal/repository"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productRepo repository.ProductRepository
}

func NewProductHandler(productRepo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productRepo.ListAvailable(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load products")
	}

	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Brand:       p.Brand,
			Condition:   p.Condition,
			Storage:     p.Storage,
			Color:       p.Color,
			Price:       money.ToBaht(p.Price),
			Image:       p.ImageURL,
		}
	}

	return c.JSON(http.StatusOK, out)
}
