package ports

import (
	"context"
	"fmt"

	"ordering/internal/pkg/errs"
)

// ErrConcurrentUpdate is returned by repositories when the stored version of an
// aggregate moved on after it was loaded.
var ErrConcurrentUpdate = fmt.Errorf("aggregate was updated concurrently: %w", errs.ErrConcurrentModification)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	// Create returns a unit of work with no transaction started.
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the pending
	// events of every tracked aggregate. Publish failures are logged only.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// CartRepository returns a CartRepository bound to the current transaction.
	CartRepository() CartRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
