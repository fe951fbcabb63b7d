package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const DefaultStaleCartBatchSize = 100

var ErrAbandonStaleCartsCommandIsNotConstructed = errors.New(
	"AbandonStaleCartsCommand must be created via NewAbandonStaleCartsCommand constructor",
)

// AbandonStaleCartsCommand removes carts nobody touched for longer than maxAge.
type AbandonStaleCartsCommand struct { //nolint:recvcheck //using for validation
	maxAge    time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

// NewAbandonStaleCartsCommand uses DefaultStaleCartBatchSize when batchSize is zero.
func NewAbandonStaleCartsCommand(maxAge time.Duration, batchSize int) (AbandonStaleCartsCommand, error) {
	if batchSize == 0 {
		batchSize = DefaultStaleCartBatchSize
	}

	var errList []error
	if maxAge <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max age", maxAge, time.Nanosecond, "unbounded"))
	}
	if batchSize < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return AbandonStaleCartsCommand{}, err
	}

	return AbandonStaleCartsCommand{maxAge: maxAge, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c AbandonStaleCartsCommand) Validate() error {
	return c.guard.Validate(ErrAbandonStaleCartsCommandIsNotConstructed)
}

func (c AbandonStaleCartsCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c AbandonStaleCartsCommand) BatchSize() int {
	return c.batchSize
}
