package event

import (
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// OrderCreated is raised once, when an order is built from a checked out cart.
type OrderCreated struct {
	Metadata

	CustomerID            kernel.UUID     `json:"customerId"`
	CartID                kernel.UUID     `json:"cartId"`
	Status                string          `json:"status"`
	Currency              string          `json:"currency"`
	TotalCost             decimal.Decimal `json:"totalCost"`
	DeliveryCost          decimal.Decimal `json:"deliveryCost"`
	TransportMethod       string          `json:"transportMethod"`
	EstimatedDeliveryTime time.Time       `json:"estimatedDeliveryTime"`
	ItemCount             int             `json:"itemCount"`
}

// StatusChanged is the payload shared by the plain forward transitions.
type StatusChanged struct {
	Metadata

	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
}

// OrderDispatched is recorded when an order leaves the warehouse.
type OrderDispatched struct {
	StatusChanged
}

// OrderInTransit is recorded when the courier picks the order up.
type OrderInTransit struct {
	StatusChanged
}

// OrderDelivered is recorded on delivery. No event follows it.
type OrderDelivered struct {
	StatusChanged
}

// OrderCancelled carries the optional customer supplied reason.
type OrderCancelled struct {
	StatusChanged

	Reason string `json:"reason,omitempty"`
}

// OrderPaymentLinked is recorded once per order, with the status at link time.
type OrderPaymentLinked struct {
	Metadata

	Status    string      `json:"status"`
	PaymentID kernel.UUID `json:"paymentId"`
}

// NewStatusChanged builds the shared payload of a forward transition.
func NewStatusChanged(name Name, orderID kernel.UUID, previous, current string, at time.Time) StatusChanged {
	return StatusChanged{
		Metadata:       NewMetadata(name, orderID, at),
		Status:         current,
		PreviousStatus: previous,
	}
}
