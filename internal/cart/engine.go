package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
)

// Engine owns the authoritative in-memory cart for one client session and
// keeps the durable store in sync after every mutation (write-through).
// Store failures are logged and swallowed: the in-memory cart stays
// authoritative for the rest of the session.
type Engine struct {
	sessionID string
	store     CartStore

	mu   sync.Mutex
	cart domain.Cart
}

func NewEngine(sessionID string, store CartStore) *Engine {
	return &Engine{
		sessionID: sessionID,
		store:     store,
	}
}

// Load populates the cart from the durable store. Missing or unparseable
// saved state yields an empty cart, never an error.
func (e *Engine) Load(ctx context.Context) {
	lines, err := e.store.Load(ctx, e.sessionID)
	if err != nil {
		if !errors.Is(err, ErrNoSavedCart) {
			log.Printf("failed to load saved cart for session %s: %v", e.sessionID, err)
		}
		return
	}

	e.mu.Lock()
	e.cart.Lines = lines
	e.mu.Unlock()
}

// persist writes the current lines through to the store. Callers must hold
// e.mu.
func (e *Engine) persist(ctx context.Context) {
	lines := e.cart.CloneLines()
	if err := e.store.Save(ctx, e.sessionID, lines); err != nil {
		log.Printf("failed to persist cart for session %s: %v", e.sessionID, err)
	}
}

// AddItem inserts a new line at quantity 1, or increments an existing line
// bounded by the stock snapshot taken when the line was created.
func (e *Engine) AddItem(ctx context.Context, p domain.Product) domain.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.cart.FindLine(p.ID); i >= 0 {
		line := &e.cart.Lines[i]
		if line.Quantity >= line.AvailableStock {
			return domain.OutcomeStockExceeded
		}
		line.Quantity++
		e.persist(ctx)
		return domain.OutcomeQuantityIncreased
	}

	if p.StockQuantity < 1 {
		return domain.OutcomeStockExceeded
	}

	e.cart.Lines = append(e.cart.Lines, domain.CartLine{
		ItemID:         p.ID,
		ProductID:      p.ProductID,
		ProductName:    p.Name,
		UnitPrice:      p.SellingPrice,
		ImageURL:       p.ImageURL,
		Quantity:       1,
		AvailableStock: p.StockQuantity,
	})
	e.persist(ctx)
	return domain.OutcomeAdded
}

// RemoveItem deletes the line if present. Removing an absent item is not an
// error.
func (e *Engine) RemoveItem(ctx context.Context, itemID string) domain.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.cart.FindLine(itemID)
	if i < 0 {
		return domain.OutcomeUnchanged
	}

	e.cart.Lines = append(e.cart.Lines[:i], e.cart.Lines[i+1:]...)
	e.persist(ctx)
	return domain.OutcomeRemoved
}

// SetQuantity sets the line's quantity, clamped to [1, stock snapshot].
// A quantity of zero or less removes the line.
func (e *Engine) SetQuantity(ctx context.Context, itemID string, quantity int) domain.Outcome {
	if quantity <= 0 {
		return e.RemoveItem(ctx, itemID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.cart.FindLine(itemID)
	if i < 0 {
		return domain.OutcomeUnchanged
	}

	line := &e.cart.Lines[i]
	outcome := domain.OutcomeQuantityUpdated
	if quantity > line.AvailableStock {
		quantity = line.AvailableStock
		outcome = domain.OutcomeQuantityLimited
	}
	line.Quantity = quantity
	e.persist(ctx)
	return outcome
}

// Clear empties the cart entirely.
func (e *Engine) Clear(ctx context.Context) domain.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart.Lines = nil
	e.persist(ctx)
	return domain.OutcomeCleared
}

func (e *Engine) IsInCart(itemID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.FindLine(itemID) >= 0
}

func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.TotalItems()
}

func (e *Engine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Subtotal()
}

// Lines returns a snapshot copy of the current line collection.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.CloneLines()
}

// LineName returns the display name of the line with the given item id, for
// notifications that mention the product.
func (e *Engine) LineName(itemID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.cart.FindLine(itemID); i >= 0 {
		return e.cart.Lines[i].ProductName
	}
	return ""
}
