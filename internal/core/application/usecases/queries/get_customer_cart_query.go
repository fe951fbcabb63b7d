// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models straight from SQL and never load aggregates.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCustomerCartQueryIsNotConstructed = errors.New(
	"GetCustomerCartQuery must be created via NewGetCustomerCartQuery constructor",
)

// GetCustomerCartQuery retrieves the active cart of a customer.
//
// Example:
//
//	query, err := NewGetCustomerCartQuery(customerID)
//	handler := NewGetCustomerCartQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // the customer has not added anything yet
//	}
type GetCustomerCartQuery struct {
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetCustomerCartQuery(customerID kernel.UUID) (GetCustomerCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerCartQuery{}, err
	}
	return GetCustomerCartQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerCartQueryIsNotConstructed)
}

func (q GetCustomerCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCustomerCartQueryResponse is the cart read model. Amounts are in Currency.
type GetCustomerCartQueryResponse struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	Currency    string
	TotalCost   decimal.Decimal
	TotalWeight decimal.Decimal
	Items       []LineItemView
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineItemView is one cart or order line as shown to clients.
type LineItemView struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Weight      decimal.Decimal
	Subtotal    decimal.Decimal
}
