package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fadiboulbina/invento-noir-connect/internal/domain"
)

var ErrDuplicateOrder = errors.New("order with this id already exists")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OutboxEvent is one unpublished order event row. The payload carries the
// structured line snapshot that the order row itself does not persist.
type OutboxEvent struct {
	ID          int
	AggregateId string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, lines []domain.CartLine) error
	RunMigrations(*Credentials) error
	Close() error
}
