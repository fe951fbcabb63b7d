package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrCheckoutCartCommandIsNotConstructed = errors.New(
	"CheckoutCartCommand must be created via NewCheckoutCartCommand constructor",
)

// CheckoutCartCommand converts the customer's cart into an order.
//
// Example:
//
//	cmd, err := NewCheckoutCartCommand(customerID, shipping, order.TransportUnknown, "gate code 1234")
//	orderID, err := handler.Handle(ctx, cmd)
type CheckoutCartCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	deliveryCost    kernel.Money
	transportMethod order.TransportMethod
	deliveryNotes   string

	guard guard.ConstructorGuard
}

// NewCheckoutCartCommand accepts order.TransportUnknown to let the weight based
// policy pick the transport method.
func NewCheckoutCartCommand(
	customerID kernel.UUID,
	deliveryCost kernel.Money,
	transportMethod order.TransportMethod,
	deliveryNotes string,
) (CheckoutCartCommand, error) {
	var transportErr error
	if transportMethod != order.TransportUnknown {
		transportErr = transportMethod.Validate()
	}

	if err := errors.Join(customerID.Validate(), transportErr); err != nil {
		return CheckoutCartCommand{}, err
	}

	return CheckoutCartCommand{
		customerID:      customerID,
		deliveryCost:    deliveryCost,
		transportMethod: transportMethod,
		deliveryNotes:   deliveryNotes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CheckoutCartCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCartCommandIsNotConstructed)
}

func (c CheckoutCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CheckoutCartCommand) DeliveryCost() kernel.Money {
	return c.deliveryCost
}

func (c CheckoutCartCommand) TransportMethod() order.TransportMethod {
	return c.transportMethod
}

func (c CheckoutCartCommand) DeliveryNotes() string {
	return c.deliveryNotes
}
