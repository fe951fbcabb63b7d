package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrWeightIsNotConstructed is returned when Weight bypassed NewWeight.
	ErrWeightIsNotConstructed = errs.NewValueIsRequiredError("Weight must be created via NewWeight or ZeroWeight")

	// ErrInvalidWeight wraps every rejected weight (negative, too precise or unset).
	ErrInvalidWeight = errs.NewValueIsInvalidError("weight")
)

const (
	// WeightScale is the number of decimal places (grams) a weight may carry.
	WeightScale = 3

	// WeightIntegerDigits bounds the kilogram part of any weight, totals included.
	WeightIntegerDigits = 9
)

// MaxWeightKg is the exclusive upper bound of a weight and of any weight total.
var MaxWeightKg = decimal.New(1, WeightIntegerDigits)

// Weight is a non-negative mass in kilograms.
type Weight struct {
	kg    decimal.Decimal
	guard guard.ConstructorGuard
}

// NewWeight accepts a non-negative kilogram amount that fits NUMERIC(12,3):
// at most WeightScale decimal places and below 10^WeightIntegerDigits kg.
// Nothing is rounded.
//
// Example:
//
//	w, err := kernel.NewWeight(decimal.RequireFromString("0.25"))
func NewWeight(kg decimal.Decimal) (Weight, error) {
	if kg.IsNegative() {
		return Weight{}, fmt.Errorf("%w: %s kg is negative", ErrInvalidWeight, kg)
	}
	if !kg.Equal(kg.Truncate(WeightScale)) {
		return Weight{}, fmt.Errorf("%w: %s kg has more than %d decimal places", ErrInvalidWeight, kg, WeightScale)
	}
	if kg.GreaterThanOrEqual(MaxWeightKg) {
		return Weight{}, fmt.Errorf("%w: %w", ErrInvalidWeight, errs.NewValueIsOutOfRangeError("weight", kg, 0, MaxWeightKg))
	}
	return Weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
}

// WeightFromGrams is handy for catalog data stored as integer grams.
func WeightFromGrams(grams int64) (Weight, error) {
	return NewWeight(decimal.New(grams, -3))
}

// ZeroWeight is the starting point for weight totals.
func ZeroWeight() Weight {
	return Weight{kg: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate reports a Weight that bypassed its constructors.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

// Kilograms returns the exact mass.
func (w Weight) Kilograms() decimal.Decimal {
	return w.kg
}

// Add returns the combined mass. The sum is unbounded; use IsStorable
// before persisting a total.
func (w Weight) Add(other Weight) Weight {
	return Weight{kg: w.kg.Add(other.kg), guard: guard.NewConstructorGuard()}
}

// Multiply scales a unit weight by a line quantity.
func (w Weight) Multiply(q Quantity) Weight {
	return Weight{kg: w.kg.Mul(decimal.NewFromInt(int64(q.Int()))), guard: guard.NewConstructorGuard()}
}

// IsStorable reports whether the weight is below 10^WeightIntegerDigits kg.
// Sums of valid weights keep WeightScale decimal places, so only the size can grow out of bounds.
func (w Weight) IsStorable() bool {
	return w.kg.LessThan(MaxWeightKg)
}

// Compare returns -1, 0 or +1 as w is lighter than, equal to or heavier than other.
func (w Weight) Compare(other Weight) int {
	return w.kg.Cmp(other.kg)
}

// IsEqual compares numerically, so 1.5kg equals 1.500kg.
func (w Weight) IsEqual(other Weight) bool {
	return w.kg.Equal(other.kg)
}

// String renders kilograms with a "kg" suffix, e.g. "6.5kg".
func (w Weight) String() string {
	return w.kg.String() + "kg"
}
