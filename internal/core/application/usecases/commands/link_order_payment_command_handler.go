package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// LinkOrderPaymentCommandHandler is idempotent for the same payment id.
type LinkOrderPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewLinkOrderPaymentCommandHandler(uowFactory OrderUoWFactory) LinkOrderPaymentCommandHandler {
	return LinkOrderPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h LinkOrderPaymentCommandHandler) Handle(ctx context.Context, cmd LinkOrderPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.LinkPayment(cmd.PaymentID())
	})
}
