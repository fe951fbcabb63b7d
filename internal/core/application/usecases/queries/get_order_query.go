package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order read model. Status and
// TransportMethod use their display names ("Created", "Bike", ...).
type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	CartID                kernel.UUID
	Status                string
	Currency              string
	TotalCost             decimal.Decimal
	DeliveryCost          decimal.Decimal
	DeliveryNotes         string
	TransportMethod       string
	EstimatedDeliveryTime time.Time
	PaymentID             *kernel.UUID
	CancellationReason    string
	Items                 []LineItemView
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
