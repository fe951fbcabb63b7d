package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// NextIdentity returns a fresh identifier for a new order.
	NextIdentity() kernel.UUID

	// Save inserts a new order (with its item snapshots) or updates the mutable
	// fields of an existing one. A stale version fails with an error wrapping
	// errs.ErrConcurrentModification.
	Save(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id and locks it for the rest of the transaction.
	// Returns an errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCustomer returns the customer's orders, newest first.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
}
