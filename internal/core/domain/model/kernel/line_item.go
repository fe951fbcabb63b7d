package kernel

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("LineItem must be created via NewLineItem")

	// ErrInvalidQuantity wraps every rejected line quantity.
	ErrInvalidQuantity = errs.NewValueIsInvalidError("quantity")

	// ErrInvalidPrice wraps every rejected unit price (zero, negative or unset).
	ErrInvalidPrice = errs.NewValueIsInvalidError("unit price")
)

// LineItem is one product entry of a cart or an order: the product reference,
// a display name captured at the time it was added, quantity, unit price and
// unit weight. Subtotal and total weight are always derived, never stored.
//
// LineItem holds no pointers to mutable state, so copying the struct (or a
// slice of them) yields an independent snapshot.
type LineItem struct {
	productID   UUID
	productName string
	quantity    Quantity
	unitPrice   Money
	weight      Weight
	guard       guard.ConstructorGuard
}

// NewLineItem validates every attribute and joins all failures into one error.
func NewLineItem(productID UUID, productName string, quantity int, unitPrice Money, weight Weight) (LineItem, error) {
	li := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		li.setProductID(productID),
		li.setProductName(productName),
		li.setQuantity(quantity),
		li.setUnitPrice(unitPrice),
		li.setWeight(weight),
	); err != nil {
		return LineItem{}, err
	}

	return li, nil
}

func (li *LineItem) setProductID(id UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	li.productID = id
	return nil
}

func (li *LineItem) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	li.productName = name
	return nil
}

func (li *LineItem) setQuantity(value int) error {
	q, err := NewQuantity(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuantity, err)
	}
	li.quantity = q
	return nil
}

func (li *LineItem) setUnitPrice(price Money) error {
	if err := price.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrice, err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidPrice, price)
	}
	li.unitPrice = price
	return nil
}

func (li *LineItem) setWeight(w Weight) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeight, err)
	}
	li.weight = w
	return nil
}

// Validate fails with ErrLineItemIsNotConstructed unless the item came from
// NewLineItem or WithQuantity.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID references the product in the catalogue context.
func (li LineItem) ProductID() UUID {
	return li.productID
}

// ProductName is the trimmed name captured when the item was added.
func (li LineItem) ProductName() string {
	return li.productName
}

func (li LineItem) Quantity() Quantity {
	return li.quantity
}

// UnitPrice is the price of a single unit. It is always positive.
func (li LineItem) UnitPrice() Money {
	return li.unitPrice
}

// Weight is the weight of a single unit.
func (li LineItem) Weight() Weight {
	return li.weight
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() Money {
	return li.unitPrice.Multiply(li.quantity)
}

// TotalWeight is unit weight times quantity.
func (li LineItem) TotalWeight() Weight {
	return li.weight.Multiply(li.quantity)
}

// WithQuantity returns a copy carrying a new quantity.
func (li LineItem) WithQuantity(value int) (LineItem, error) {
	out := li
	if err := out.setQuantity(value); err != nil {
		return LineItem{}, err
	}
	return out, nil
}

// IsEqual compares every field. Two lines for the same product with a
// different price are not equal.
func (li LineItem) IsEqual(other LineItem) bool {
	return li.productID.IsEqual(other.productID) &&
		li.productName == other.productName &&
		li.quantity.IsEqual(other.quantity) &&
		li.unitPrice.IsEqual(other.unitPrice) &&
		li.weight.IsEqual(other.weight)
}
