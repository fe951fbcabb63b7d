package kernel

import (
	"math"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Bounds of a single line quantity, both inclusive.
const (
	MinQuantity = 1
	MaxQuantity = math.MaxInt32
)

// ErrQuantityIsNotConstructed is returned when Quantity bypassed NewQuantity.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("Quantity must be created via NewQuantity")

// Quantity is the number of units on a single line item.
type Quantity struct {
	value int
	guard guard.ConstructorGuard
}

// NewQuantity accepts MinQuantity through MaxQuantity and returns an
// errs.ValueIsOutOfRangeError otherwise.
//
// Example:
//
//	qty, err := kernel.NewQuantity(3)
//	_, err = kernel.NewQuantity(0) // errs.ErrValueIsOutOfRange
func NewQuantity(value int) (Quantity, error) {
	if value < MinQuantity || value > MaxQuantity {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, MinQuantity, MaxQuantity)
	}
	return Quantity{value: value, guard: guard.NewConstructorGuard()}, nil
}

// Validate fails with ErrQuantityIsNotConstructed for the zero value.
func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

// Int returns the number of units.
func (q Quantity) Int() int {
	return q.value
}

// Add merges two quantities of the same product.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

// IsEqual compares unit counts.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}
