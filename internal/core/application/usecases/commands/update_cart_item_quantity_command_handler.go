package commands

import (
	"context"

	"ordering/internal/core/domain/model/cart"
)

// UpdateCartItemQuantityCommandHandler fails with cart.ErrItemNotFound for an
// unknown product and cart.ErrInvalidQuantity for quantities below one.
type UpdateCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewUpdateCartItemQuantityCommandHandler(uowFactory CartUoWFactory) UpdateCartItemQuantityCommandHandler {
	return UpdateCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateCustomerCart(ctx, h.uowFactory, cmd.CustomerID(), func(c *cart.Cart) error {
		return c.UpdateItemQuantity(cmd.ProductID(), cmd.Quantity())
	})
}
