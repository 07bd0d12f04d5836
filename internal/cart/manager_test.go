package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SameSessionSameEngine(t *testing.T) {
	manager := NewManager(newMockStore())
	ctx := context.Background()

	first := manager.Get(ctx, "s1")
	second := manager.Get(ctx, "s1")

	assert.Same(t, first, second)
}

func TestManager_DifferentSessionsDifferentEngines(t *testing.T) {
	manager := NewManager(newMockStore())
	ctx := context.Background()

	a := manager.Get(ctx, "s1")
	b := manager.Get(ctx, "s2")

	assert.NotSame(t, a, b)

	a.AddItem(ctx, phone(5))
	assert.Empty(t, b.Lines())
}

func TestManager_LoadsSavedCartOnce(t *testing.T) {
	store := newMockStore()
	store.saved["s1"] = []domain.CartLine{
		{ItemID: "p1", ProductName: "Samsung Galaxy A54", UnitPrice: 45000, Quantity: 2, AvailableStock: 5},
	}
	manager := NewManager(store)

	engine := manager.Get(context.Background(), "s1")

	require.Len(t, engine.Lines(), 1)
	assert.Equal(t, 2, engine.Lines()[0].Quantity)
}

func TestManager_ConcurrentGetsCollapse(t *testing.T) {
	manager := NewManager(newMockStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	engines := make([]*Engine, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engines[i] = manager.Get(ctx, "s1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < 20; i++ {
		assert.Same(t, engines[0], engines[i])
	}
}

func TestManager_DropForgetsEngine(t *testing.T) {
	manager := NewManager(newMockStore())
	ctx := context.Background()

	first := manager.Get(ctx, "s1")
	manager.Drop("s1")
	second := manager.Get(ctx, "s1")

	assert.NotSame(t, first, second)
}
