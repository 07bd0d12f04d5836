package cart

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Manager hands out one Engine per session, loading the saved cart exactly
// once. Concurrent requests for the same session collapse onto a single
// load via singleflight.
type Manager struct {
	store CartStore

	mu      sync.RWMutex
	engines map[string]*Engine
	sfg     singleflight.Group
}

func NewManager(store CartStore) *Manager {
	return &Manager{
		store:   store,
		engines: make(map[string]*Engine),
	}
}

func (m *Manager) Get(ctx context.Context, sessionID string) *Engine {
	m.mu.RLock()
	engine, ok := m.engines[sessionID]
	m.mu.RUnlock()
	if ok {
		return engine
	}

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		m.mu.RLock()
		existing, found := m.engines[sessionID]
		m.mu.RUnlock()
		if found {
			return existing, nil
		}

		e := NewEngine(sessionID, m.store)
		e.Load(ctx)

		m.mu.Lock()
		m.engines[sessionID] = e
		m.mu.Unlock()
		return e, nil
	})

	return v.(*Engine)
}

// Drop forgets the session's engine. The durable mirror is left alone.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	delete(m.engines, sessionID)
	m.mu.Unlock()
}
