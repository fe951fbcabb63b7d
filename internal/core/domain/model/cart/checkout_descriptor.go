package cart

import (
	"slices"

	"ordering/internal/core/domain/model/kernel"
)

// CheckoutDescriptor is what a successful Checkout hands to order creation.
// It owns its item copies; later cart mutations do not reach it.
type CheckoutDescriptor struct {
	cartID      kernel.UUID
	customerID  kernel.UUID
	currency    kernel.Currency
	items       []kernel.LineItem
	totalCost   kernel.Money
	totalWeight kernel.Weight
}

// CartID identifies the cart that was checked out.
func (d CheckoutDescriptor) CartID() kernel.UUID {
	return d.cartID
}

// CustomerID is the cart owner.
func (d CheckoutDescriptor) CustomerID() kernel.UUID {
	return d.customerID
}

func (d CheckoutDescriptor) Currency() kernel.Currency {
	return d.currency
}

// Items returns a copy of the lines at checkout time.
func (d CheckoutDescriptor) Items() []kernel.LineItem {
	return slices.Clone(d.items)
}

// TotalCost is the items total, without delivery.
func (d CheckoutDescriptor) TotalCost() kernel.Money {
	return d.totalCost
}

// TotalWeight drives the transport method choice.
func (d CheckoutDescriptor) TotalWeight() kernel.Weight {
	return d.totalWeight
}

// IsEmpty is true for the zero descriptor.
func (d CheckoutDescriptor) IsEmpty() bool {
	return len(d.items) == 0
}
