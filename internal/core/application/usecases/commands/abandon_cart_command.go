package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrAbandonCartCommandIsNotConstructed = errors.New(
	"AbandonCartCommand must be created via NewAbandonCartCommand constructor",
)

// AbandonCartCommand deletes the customer's cart outright.
type AbandonCartCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAbandonCartCommand(customerID kernel.UUID) (AbandonCartCommand, error) {
	if err := customerID.Validate(); err != nil {
		return AbandonCartCommand{}, err
	}
	return AbandonCartCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (c AbandonCartCommand) Validate() error {
	return c.guard.Validate(ErrAbandonCartCommandIsNotConstructed)
}

func (c AbandonCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}
