package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultCustomerOrdersLimit = 50
	MaxCustomerOrdersLimit     = 500
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery lists a customer's orders, newest first, optionally
// filtered by status.
//
// Example:
//
//	query, err := NewGetCustomerOrdersQuery(customerID, order.Unknown, 20)
//	orders, err := handler.Handle(ctx, query)
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID
	status     order.Status
	limit      int
	guard      guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery treats order.Unknown as "any status" and a zero
// limit as DefaultCustomerOrdersLimit.
func NewGetCustomerOrdersQuery(customerID kernel.UUID, status order.Status, limit int) (GetCustomerOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultCustomerOrdersLimit
	}

	var statusErr, limitErr error
	if status != order.Unknown {
		statusErr = status.Validate()
	}
	if limit < 1 || limit > MaxCustomerOrdersLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxCustomerOrdersLimit)
	}

	if err := errors.Join(customerID.Validate(), statusErr, limitErr); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return GetCustomerOrdersQuery{
		customerID: customerID,
		status:     status,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q GetCustomerOrdersQuery) Status() order.Status {
	return q.status
}

func (q GetCustomerOrdersQuery) Limit() int {
	return q.limit
}

// OrderSummaryView is one row of a customer's order history.
type OrderSummaryView struct {
	ID                    kernel.UUID
	Status                string
	Currency              string
	TotalCost             decimal.Decimal
	TransportMethod       string
	EstimatedDeliveryTime time.Time
	ItemCount             int
	CreatedAt             time.Time
}
