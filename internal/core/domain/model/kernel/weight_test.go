package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeight(t *testing.T) {
	t.Run("should accept zero and positive values", func(t *testing.T) {
		w, err := kernel.NewWeight(decimal.RequireFromString("2.5"))

		require.NoError(t, err)
		assert.Equal(t, "2.5kg", w.String())
		assert.NoError(t, kernel.ZeroWeight().Validate())
	})

	t.Run("should reject negative values", func(t *testing.T) {
		_, err := kernel.NewWeight(decimal.RequireFromString("-0.001"))

		assert.ErrorIs(t, err, kernel.ErrInvalidWeight)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject weights finer than a gram instead of rounding", func(t *testing.T) {
		_, err := kernel.NewWeight(decimal.RequireFromString("0.0005"))

		assert.ErrorIs(t, err, kernel.ErrInvalidWeight)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject weights with more than nine integer digits", func(t *testing.T) {
		_, err := kernel.NewWeight(kernel.MaxWeightKg)

		assert.ErrorIs(t, err, kernel.ErrInvalidWeight)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		w := mustWeight(t, "999999999.999")
		assert.True(t, w.IsStorable())
		assert.False(t, w.Add(mustWeight(t, "0.001")).IsStorable())
	})

	t.Run("should convert grams", func(t *testing.T) {
		w, err := kernel.WeightFromGrams(1500)

		require.NoError(t, err)
		assert.True(t, w.Kilograms().Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("should add, multiply and compare", func(t *testing.T) {
		a, _ := kernel.NewWeight(decimal.NewFromInt(2))
		b, _ := kernel.NewWeight(decimal.NewFromInt(3))
		q, _ := kernel.NewQuantity(4)

		assert.True(t, a.Add(b).IsEqual(mustWeight(t, "5")))
		assert.True(t, a.Multiply(q).IsEqual(mustWeight(t, "8")))
		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, 0, a.Compare(mustWeight(t, "2.000")))
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var w kernel.Weight

		assert.Equal(t, kernel.ErrWeightIsNotConstructed, w.Validate())
	})
}

func mustWeight(t *testing.T, kg string) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(decimal.RequireFromString(kg))
	require.NoError(t, err)
	return w
}
