// Package checkout orchestrates order submission: validate the draft, write
// the order through the repository, and clear the cart on success.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fadiboulbina/invento-noir-connect/internal/cart"
	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
	"github.com/fadiboulbina/invento-noir-connect/internal/pricing"
	"github.com/fadiboulbina/invento-noir-connect/internal/repository"
)

type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrSubmitFailed   = errors.New("order submission failed")
)

// ValidationError lists the reasons a draft cannot be submitted. No network
// call is made while it is non-nil.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft is not submittable: %s", strings.Join(e.Missing, ", "))
}

// Flow runs at most one submission at a time for its cart. A failed
// submission leaves the cart untouched so a retry is safe.
type Flow struct {
	repo   repository.OrderRepository
	calc   pricing.Calculator
	engine *cart.Engine

	mu          sync.Mutex
	state       State
	lastOutcome State
	lastOrderID string
}

func NewFlow(repo repository.OrderRepository, calc pricing.Calculator, engine *cart.Engine) *Flow {
	return &Flow{
		repo:   repo,
		calc:   calc,
		engine: engine,
		state:  StateIdle,
	}
}

// State reports the in-flight phase. A completed submission returns the flow
// to Idle; its result is kept in LastOutcome.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastOutcome returns Succeeded or Failed for the most recent completed
// submission, or the zero State if none has completed yet.
func (f *Flow) LastOutcome() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOutcome
}

// LastOrderID returns the identifier generated by the most recent successful
// submission, for confirmation display.
func (f *Flow) LastOrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOrderID
}

// Validate checks the draft without touching the network: the line snapshot
// must be non-empty, required customer fields non-blank, and the payment
// method currently available. Returns nil when the draft is submittable.
func (f *Flow) Validate(draft *domain.OrderDraft) *ValidationError {
	var missing []string

	if len(draft.Lines) == 0 {
		missing = append(missing, "cart")
	}
	if strings.TrimSpace(draft.Customer.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(draft.Customer.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(draft.Customer.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(draft.Customer.Wilaya) == "" {
		missing = append(missing, "wilaya")
	}
	if strings.TrimSpace(draft.Customer.Commune) == "" {
		missing = append(missing, "commune")
	}
	if !draft.Payment.Available() {
		missing = append(missing, "payment_method")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Submit re-validates the draft, writes the order, and clears the cart on
// success. A second call while one is in flight returns ErrSubmitInFlight.
func (f *Flow) Submit(ctx context.Context, draft *domain.OrderDraft) (string, error) {
	f.mu.Lock()
	if f.state == StateSubmitting || f.state == StateValidating {
		f.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	f.state = StateValidating
	f.mu.Unlock()

	if verr := f.Validate(draft); verr != nil {
		f.setState(StateIdle)
		return "", verr
	}

	f.setState(StateSubmitting)

	order := f.buildOrder(draft)
	if err := f.repo.CreateOrder(ctx, order, draft.Lines); err != nil {
		log.Printf("order submission failed for %s: %v", order.OrderID, err)
		f.finish(StateFailed, "")
		return "", fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	f.engine.Clear(ctx)
	f.finish(StateSucceeded, order.OrderID)

	return order.OrderID, nil
}

// finish records the submission result and returns the flow to Idle.
func (f *Flow) finish(outcome State, orderID string) {
	f.mu.Lock()
	f.lastOutcome = outcome
	f.state = StateIdle
	if orderID != "" {
		f.lastOrderID = orderID
	}
	f.mu.Unlock()
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Flow) buildOrder(draft *domain.OrderDraft) *domain.Order {
	return &domain.Order{
		OrderID:        newOrderID(),
		TotalAmount:    f.calc.Total(draft.Lines, draft.Shipping),
		PaymentStatus:  domain.PaymentStatusPending,
		DeliveryStatus: domain.DeliveryStatusPending,
		Notes:          buildNotes(draft),
		CreatedAt:      time.Now().UTC(),
	}
}

// newOrderID generates a human-readable time-based identifier. Uniqueness is
// enforced by the orders table; a collision surfaces as a retryable failure.
func newOrderID() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}

// buildNotes aggregates the contact, address, payment and shipping details
// into the free-text field the order row carries.
func buildNotes(draft *domain.OrderDraft) string {
	notes := draft.Customer.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "none"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", draft.Customer.FullName)
	fmt.Fprintf(&b, "Phone: %s\n", draft.Customer.Phone)
	if draft.Customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", draft.Customer.Email)
	}
	fmt.Fprintf(&b, "Address: %s, %s, %s\n", draft.Customer.Address, draft.Customer.Commune, draft.Customer.Wilaya)
	fmt.Fprintf(&b, "Payment: %s\n", draft.Payment.Label())
	fmt.Fprintf(&b, "Shipping: %s\n", draft.Shipping.Label())
	fmt.Fprintf(&b, "Notes: %s", notes)
	return b.String()
}
