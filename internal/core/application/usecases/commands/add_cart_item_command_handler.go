package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/pkg/errs"
)

// AddCartItemCommandHandler adds a line to the customer's active cart. When the
// customer has no cart yet, one is created in the currency of the item price.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
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
	if errors.Is(err, errs.ErrObjectNotFound) {
		c, err = cart.NewCart(cartRepo.NextIdentity(), cmd.CustomerID(), cmd.UnitPrice().Currency())
	}
	if err != nil {
		return err
	}

	if err = c.AddItem(
		cmd.ProductID(),
		cmd.ProductName(),
		cmd.Quantity(),
		cmd.UnitPrice(),
		cmd.Weight(),
	); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
