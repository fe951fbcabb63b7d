package commands

import (
	"context"

	"ordering/internal/core/domain/model/cart"
)

type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateCustomerCart(ctx, h.uowFactory, cmd.CustomerID(), func(c *cart.Cart) error {
		return c.Clear()
	})
}
