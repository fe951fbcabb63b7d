// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work, the event sink and the
// inventory lookup.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// One active cart per customer is enforced through GetByCustomer by the use
// cases, not by the aggregate.
type CartRepository interface {
	// NextIdentity returns a fresh identifier for a new cart.
	NextIdentity() kernel.UUID

	// Save inserts a new cart or updates an existing one together with its items.
	// A write based on a stale version fails with an error wrapping
	// errs.ErrConcurrentModification.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// Get loads a cart by id and locks it for the rest of the transaction.
	// Returns an errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetByCustomer loads and locks the customer's active cart.
	// Returns an errs.ObjectNotFoundError when the customer has none.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// GetStale returns up to limit carts not updated since the given instant.
	GetStale(ctx context.Context, updatedBefore time.Time, limit int) ([]*cart.Cart, error)

	// Remove deletes the cart and its items. Removing an absent cart is not an error.
	Remove(ctx context.Context, id kernel.UUID) error
}
