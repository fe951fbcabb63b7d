package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrUpdateCartItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartItemQuantityCommand must be created via NewUpdateCartItemQuantityCommand constructor",
)

// UpdateCartItemQuantityCommand sets an absolute quantity for a product line.
type UpdateCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	productID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemQuantityCommand(
	customerID kernel.UUID,
	productID kernel.UUID,
	quantity int,
) (UpdateCartItemQuantityCommand, error) {
	if err := errors.Join(customerID.Validate(), productID.Validate()); err != nil {
		return UpdateCartItemQuantityCommand{}, err
	}

	return UpdateCartItemQuantityCommand{
		customerID: customerID,
		productID:  productID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemQuantityCommandIsNotConstructed)
}

func (c UpdateCartItemQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c UpdateCartItemQuantityCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c UpdateCartItemQuantityCommand) Quantity() int {
	return c.quantity
}
