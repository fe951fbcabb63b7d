package commands

import (
	"context"

	"ordering/internal/core/domain/model/cart"
)

// RemoveCartItemCommandHandler removes a line. Removing a product that is not
// in the cart succeeds without changes.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateCustomerCart(ctx, h.uowFactory, cmd.CustomerID(), func(c *cart.Cart) error {
		return c.RemoveItem(cmd.ProductID())
	})
}
