package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fadiboulbina/invento-noir-connect/internal/cart"
	"github.com/fadiboulbina/invento-noir-connect/internal/catalog"
	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts   *cart.Manager
	catalog CatalogReader
	timeout time.Duration
}

func NewCartHandler(carts *cart.Manager, catalog CatalogReader, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ItemID string `json:"item_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   float64           `json:"subtotal"`
	Outcome    string            `json:"outcome,omitempty"`
	Notice     string            `json:"notice,omitempty"`
}

// cartResponse takes one line snapshot and derives the totals from it, so a
// concurrent mutation on the same session cannot skew totals against items.
func (h *CartHandler) cartResponse(engine *cart.Engine, outcome domain.Outcome, notice string) CartResponseDTO {
	items := engine.Lines()
	if items == nil {
		items = []domain.CartLine{}
	}
	snapshot := domain.Cart{Lines: items}
	return CartResponseDTO{
		Items:      items,
		TotalItems: snapshot.TotalItems(),
		Subtotal:   snapshot.Subtotal(),
		Outcome:    string(outcome),
		Notice:     notice,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	engine := h.carts.Get(ctx, sessionID)
	respondJSON(w, http.StatusOK, h.cartResponse(engine, "", ""))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	product, err := h.catalog.GetProduct(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to look up product")
		return
	}

	engine := h.carts.Get(ctx, sessionID)
	outcome := engine.AddItem(ctx, *product)

	status := http.StatusCreated
	if outcome == domain.OutcomeStockExceeded {
		status = http.StatusConflict
	}
	respondJSON(w, status, h.cartResponse(engine, outcome, noticeFor(outcome, product.Name)))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	engine := h.carts.Get(ctx, sessionID)
	name := engine.LineName(itemID)
	outcome := engine.SetQuantity(ctx, itemID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse(engine, outcome, noticeFor(outcome, name)))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	engine := h.carts.Get(ctx, sessionID)
	name := engine.LineName(itemID)
	outcome := engine.RemoveItem(ctx, itemID)
	respondJSON(w, http.StatusOK, h.cartResponse(engine, outcome, noticeFor(outcome, name)))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	engine := h.carts.Get(ctx, sessionID)
	outcome := engine.Clear(ctx)
	respondJSON(w, http.StatusOK, h.cartResponse(engine, outcome, noticeFor(outcome, "")))
}
