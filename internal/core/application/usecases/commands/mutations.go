package commands

import (
	"context"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// mutateCustomerCart loads the customer's cart under lock, applies mutate and
// saves the result in one transaction.
func mutateCustomerCart(
	ctx context.Context,
	uowFactory CartUoWFactory,
	customerID kernel.UUID,
	mutate func(c *cart.Cart) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	if err = mutate(c); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// mutateOrder loads an order under lock, applies mutate and saves the result.
// Events recorded by mutate are published by the unit of work after commit.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate func(o *order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = mutate(o); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
