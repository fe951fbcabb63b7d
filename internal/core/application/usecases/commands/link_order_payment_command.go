package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrLinkOrderPaymentCommandIsNotConstructed = errors.New(
	"LinkOrderPaymentCommand must be created via NewLinkOrderPaymentCommand constructor",
)

// LinkOrderPaymentCommand attaches the payment reported by the payment context.
type LinkOrderPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewLinkOrderPaymentCommand(orderID kernel.UUID, paymentID kernel.UUID) (LinkOrderPaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), paymentID.Validate()); err != nil {
		return LinkOrderPaymentCommand{}, err
	}
	return LinkOrderPaymentCommand{orderID: orderID, paymentID: paymentID, guard: guard.NewConstructorGuard()}, nil
}

func (c LinkOrderPaymentCommand) Validate() error {
	return c.guard.Validate(ErrLinkOrderPaymentCommandIsNotConstructed)
}

func (c LinkOrderPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c LinkOrderPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}
