package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	m       sync.RWMutex
	saved   map[string][]domain.CartLine
	loadErr error
	saveErr error
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{saved: make(map[string][]domain.CartLine)}
}

func (m *mockStore) Load(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	lines, ok := m.saved[sessionID]
	if !ok {
		return nil, ErrNoSavedCart
	}
	return lines, nil
}

func (m *mockStore) Save(_ context.Context, sessionID string, lines []domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[sessionID] = lines
	return nil
}

func (m *mockStore) Delete(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.saved, sessionID)
	return nil
}

func (m *mockStore) saveCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.saves
}

func phone(stock int) domain.Product {
	return domain.Product{
		ID:            "p1",
		ProductID:     "PH-001",
		Name:          "Samsung Galaxy A54",
		SellingPrice:  45000,
		StockQuantity: stock,
	}
}

func TestAddItem_NewLine(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	outcome := engine.AddItem(ctx, phone(2))

	assert.Equal(t, domain.OutcomeAdded, outcome)
	require.Len(t, engine.Lines(), 1)
	assert.Equal(t, 1, engine.Lines()[0].Quantity)
	assert.Equal(t, 45000.0, engine.Subtotal())
	assert.True(t, engine.IsInCart("p1"))
}

func TestAddItem_RepeatedAddsIncrementNotDuplicate(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	assert.Equal(t, domain.OutcomeAdded, engine.AddItem(ctx, phone(5)))
	assert.Equal(t, domain.OutcomeQuantityIncreased, engine.AddItem(ctx, phone(5)))
	assert.Equal(t, domain.OutcomeQuantityIncreased, engine.AddItem(ctx, phone(5)))

	require.Len(t, engine.Lines(), 1)
	assert.Equal(t, 3, engine.Lines()[0].Quantity)
	assert.Equal(t, 3, engine.TotalItems())
}

func TestAddItem_RejectedAtStockBound(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	engine.AddItem(ctx, phone(2))
	engine.AddItem(ctx, phone(2))
	savesBefore := store.saveCount()

	outcome := engine.AddItem(ctx, phone(2))

	assert.Equal(t, domain.OutcomeStockExceeded, outcome)
	assert.Equal(t, 2, engine.Lines()[0].Quantity)
	// Rejected adds must not touch the store.
	assert.Equal(t, savesBefore, store.saveCount())
}

func TestAddItem_ZeroStockRejected(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)

	outcome := engine.AddItem(context.Background(), phone(0))

	assert.Equal(t, domain.OutcomeStockExceeded, outcome)
	assert.Empty(t, engine.Lines())
	assert.False(t, engine.IsInCart("p1"))
}

func TestSetQuantity_ClampedToStock(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	engine.AddItem(ctx, phone(3))

	outcome := engine.SetQuantity(ctx, "p1", 10)

	assert.Equal(t, domain.OutcomeQuantityLimited, outcome)
	assert.Equal(t, 3, engine.Lines()[0].Quantity)
}

func TestSetQuantity_WithinStock(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	engine.AddItem(ctx, phone(5))

	outcome := engine.SetQuantity(ctx, "p1", 4)

	assert.Equal(t, domain.OutcomeQuantityUpdated, outcome)
	assert.Equal(t, 4, engine.Lines()[0].Quantity)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	engine.AddItem(ctx, phone(2))
	engine.AddItem(ctx, phone(2))

	outcome := engine.SetQuantity(ctx, "p1", 0)

	assert.Equal(t, domain.OutcomeRemoved, outcome)
	assert.Empty(t, engine.Lines())
	assert.Equal(t, 0.0, engine.Subtotal())
}

func TestSetQuantity_UnknownItem(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)

	outcome := engine.SetQuantity(context.Background(), "ghost", 2)

	assert.Equal(t, domain.OutcomeUnchanged, outcome)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)

	outcome := engine.RemoveItem(context.Background(), "ghost")

	assert.Equal(t, domain.OutcomeUnchanged, outcome)
}

func TestClear_EmptiesCart(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	engine.AddItem(ctx, phone(5))
	engine.AddItem(ctx, domain.Product{ID: "p2", Name: "Coque", SellingPrice: 800, StockQuantity: 10})

	outcome := engine.Clear(ctx)

	assert.Equal(t, domain.OutcomeCleared, outcome)
	assert.Empty(t, engine.Lines())
	assert.Equal(t, 0, engine.TotalItems())
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := newMockStore()
	ctx := context.Background()

	engine := NewEngine("s1", store)
	engine.AddItem(ctx, phone(5))
	engine.AddItem(ctx, phone(5))
	engine.AddItem(ctx, domain.Product{ID: "p2", Name: "Coque", SellingPrice: 800, StockQuantity: 10})

	reloaded := NewEngine("s1", store)
	reloaded.Load(ctx)

	require.Equal(t, engine.Lines(), reloaded.Lines())
	assert.Equal(t, engine.Subtotal(), reloaded.Subtotal())
	assert.Equal(t, engine.TotalItems(), reloaded.TotalItems())
}

func TestLoad_StoreErrorYieldsEmptyCart(t *testing.T) {
	store := newMockStore()
	store.loadErr = assert.AnError

	engine := NewEngine("s1", store)
	engine.Load(context.Background())

	assert.Empty(t, engine.Lines())
}

func TestPersistFailure_MemoryStaysAuthoritative(t *testing.T) {
	store := newMockStore()
	store.saveErr = assert.AnError
	engine := NewEngine("s1", store)
	ctx := context.Background()

	outcome := engine.AddItem(ctx, phone(2))

	assert.Equal(t, domain.OutcomeAdded, outcome)
	require.Len(t, engine.Lines(), 1)
}

// Mirrors the storefront flow: two adds fill the stock of two, a third is
// rejected, and setting quantity to zero empties the cart.
func TestStockBoundScenario(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()

	assert.Equal(t, domain.OutcomeAdded, engine.AddItem(ctx, phone(2)))
	assert.Equal(t, domain.OutcomeQuantityIncreased, engine.AddItem(ctx, phone(2)))

	require.Len(t, engine.Lines(), 1)
	assert.Equal(t, 2, engine.Lines()[0].Quantity)
	assert.Equal(t, 90000.0, engine.Subtotal())

	assert.Equal(t, domain.OutcomeStockExceeded, engine.AddItem(ctx, phone(2)))
	assert.Equal(t, 2, engine.Lines()[0].Quantity)

	assert.Equal(t, domain.OutcomeRemoved, engine.SetQuantity(ctx, "p1", 0))
	assert.Empty(t, engine.Lines())
	assert.Equal(t, 0.0, engine.Subtotal())
}

func TestStockBound_NeverExceededUnderAnySequence(t *testing.T) {
	store := newMockStore()
	engine := NewEngine("s1", store)
	ctx := context.Background()
	const stock = 4

	for i := 0; i < 10; i++ {
		engine.AddItem(ctx, phone(stock))
	}
	engine.SetQuantity(ctx, "p1", 99)
	engine.AddItem(ctx, phone(stock))

	require.Len(t, engine.Lines(), 1)
	q := engine.Lines()[0].Quantity
	assert.GreaterOrEqual(t, q, 0)
	assert.LessOrEqual(t, q, stock)
}
