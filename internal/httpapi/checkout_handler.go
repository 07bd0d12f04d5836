package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fadiboulbina/invento-noir-connect/internal/cart"
	"github.com/fadiboulbina/invento-noir-connect/internal/checkout"
	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
	"github.com/fadiboulbina/invento-noir-connect/internal/pricing"
	"github.com/fadiboulbina/invento-noir-connect/internal/repository"
)

type CheckoutHandler struct {
	carts   *cart.Manager
	repo    repository.OrderRepository
	calc    pricing.Calculator
	timeout time.Duration

	mu    sync.Mutex
	flows map[string]*checkout.Flow
}

func NewCheckoutHandler(carts *cart.Manager, repo repository.OrderRepository, calc pricing.Calculator, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		carts:   carts,
		repo:    repo,
		calc:    calc,
		timeout: timeout,
		flows:   make(map[string]*checkout.Flow),
	}
}

// flowFor returns the session's checkout flow, creating it on first use.
// One flow per session keeps the at-most-one-in-flight guard effective
// across rapid duplicate requests.
func (h *CheckoutHandler) flowFor(ctx context.Context, sessionID string) *checkout.Flow {
	h.mu.Lock()
	defer h.mu.Unlock()

	if flow, ok := h.flows[sessionID]; ok {
		return flow
	}
	flow := checkout.NewFlow(h.repo, h.calc, h.carts.Get(ctx, sessionID))
	h.flows[sessionID] = flow
	return flow
}

type SubmitOrderRequestDTO struct {
	Customer       domain.CustomerInfo `json:"customer"`
	PaymentMethod  string              `json:"payment_method"`
	ShippingMethod string              `json:"shipping_method"`
}

type SubmitOrderResponseDTO struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	Notice      string  `json:"notice"`
}

type TotalsResponseDTO struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Total        float64 `json:"total"`
}

// Totals previews the checkout breakdown for the current cart and the
// requested shipping method.
func (h *CheckoutHandler) Totals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	method := domain.ShippingMethod(r.URL.Query().Get("shipping"))
	if method == "" {
		method = domain.ShippingStandard
	}

	lines := h.carts.Get(ctx, sessionID).Lines()
	respondJSON(w, http.StatusOK, TotalsResponseDTO{
		Subtotal:     h.calc.Subtotal(lines),
		ShippingCost: h.calc.ShippingCost(method),
		Total:        h.calc.Total(lines, method),
	})
}

func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req SubmitOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	payment := domain.PaymentMethod(req.PaymentMethod)
	if payment == "" {
		payment = domain.PaymentCashOnDelivery
	}
	shipping := domain.ShippingMethod(req.ShippingMethod)
	if shipping == "" {
		shipping = domain.ShippingStandard
	}

	engine := h.carts.Get(ctx, sessionID)
	draft := &domain.OrderDraft{
		Customer: req.Customer,
		Payment:  payment,
		Shipping: shipping,
		Lines:    engine.Lines(),
	}
	total := h.calc.Total(draft.Lines, draft.Shipping)

	flow := h.flowFor(ctx, sessionID)
	orderID, err := flow.Submit(ctx, draft)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "required fields are missing or the cart is empty",
				Code:    "validation_failed",
				Missing: verr.Missing,
			})
		case errors.Is(err, checkout.ErrSubmitInFlight):
			respondError(w, http.StatusConflict, "submit_in_flight", "an order submission is already in progress")
		default:
			respondError(w, http.StatusBadGateway, "submit_failed",
				"Something went wrong while submitting the order. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusCreated, SubmitOrderResponseDTO{
		OrderID:     orderID,
		TotalAmount: total,
		Notice:      "Order " + orderID + " submitted successfully",
	})
}
