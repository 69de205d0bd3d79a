package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns all orders when customerID is empty, otherwise only the
	// orders placed by that customer.
	List(ctx context.Context, customerID string) ([]*domain.Order, error)
}

// OrderEventPublisher delivers order events to an external broker.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// OrderEventSink accepts events for asynchronous delivery.
type OrderEventSink interface {
	Enqueue(event domain.OrderEvent) bool
}
