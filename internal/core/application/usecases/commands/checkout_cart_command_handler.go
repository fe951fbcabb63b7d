package commands

import (
	"context"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// CheckoutCartCommandHandler runs the checkout workflow in a single transaction:
//
//  1. load and lock the customer's cart
//  2. Cart.Checkout with the stock policy (EmptyCart / CheckoutNotAllowed)
//  3. build the order from the descriptor using the pricing service
//  4. save the order and remove the cart
//  5. commit, after which OrderCreated is published
//
// Any failure rolls everything back, so the cart survives a failed checkout.
type CheckoutCartCommandHandler struct {
	uowFactory UoWFactory
	policy     cart.CheckoutPolicy
	pricing    order.Pricing
}

func NewCheckoutCartCommandHandler(
	uowFactory UoWFactory,
	policy cart.CheckoutPolicy,
	pricing order.Pricing,
) CheckoutCartCommandHandler {
	return CheckoutCartCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		pricing:    pricing,
	}
}

// Handle returns the id of the created order.
func (h CheckoutCartCommandHandler) Handle(ctx context.Context, cmd CheckoutCartCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	orderRepo := uow.OrderRepository()

	c, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	descriptor, err := c.Checkout(ctx, h.policy)
	if err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(
		orderRepo.NextIdentity(),
		descriptor,
		cmd.DeliveryCost(),
		h.pricing,
		order.WithTransportMethod(cmd.TransportMethod()),
		order.WithDeliveryNotes(cmd.DeliveryNotes()),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.Save(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = cartRepo.Remove(ctx, c.ID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
