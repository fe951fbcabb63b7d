package commands

import (
	"context"
)

// AbandonCartCommandHandler removes the customer's cart from storage.
// Returns errs.ObjectNotFoundError when the customer has no cart.
type AbandonCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAbandonCartCommandHandler(uowFactory CartUoWFactory) AbandonCartCommandHandler {
	return AbandonCartCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AbandonCartCommandHandler) Handle(ctx context.Context, cmd AbandonCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = cartRepo.Remove(ctx, c.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
