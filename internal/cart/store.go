package cart

import (
	"context"
	"errors"

	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
)

// CartStore is the durable key-value mirror of a session's cart lines.
type CartStore interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNoSavedCart = errors.New("no saved cart")
