package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fadiboulbina/invento-noir-connect/internal/catalog"
	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CatalogReader is the slice of the catalog the storefront surface needs.
type CatalogReader interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog CatalogReader
	timeout time.Duration
}

func NewProductHandler(catalog CatalogReader, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductDTO struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	SellingPrice  float64 `json:"selling_price"`
	ImageURL      string  `json:"image_url,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		ProductID:     p.ProductID,
		Name:          p.Name,
		SellingPrice:  p.SellingPrice,
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.GetAllProducts(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product))
}
