package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("should derive subtotal and total weight", func(t *testing.T) {
		li, err := kernel.NewLineItem(productID, "  Mug ", 3, usd(t, "4.50"), mustWeight(t, "0.4"))

		require.NoError(t, err)
		assert.Equal(t, "Mug", li.ProductName())
		assert.True(t, li.ProductID().IsEqual(productID))
		assert.Equal(t, 3, li.Quantity().Int())
		assert.True(t, li.Subtotal().IsEqual(usd(t, "13.50")))
		assert.True(t, li.TotalWeight().IsEqual(mustWeight(t, "1.2")))
	})

	t.Run("should report every invalid attribute at once", func(t *testing.T) {
		_, err := kernel.NewLineItem(kernel.UUID{}, " ", 0, usd(t, "0"), kernel.Weight{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrInvalidQuantity)
		assert.ErrorIs(t, err, kernel.ErrInvalidPrice)
		assert.ErrorIs(t, err, kernel.ErrWeightIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := kernel.NewLineItem(productID, "Mug", 1, usd(t, "-1"), kernel.ZeroWeight())

		assert.ErrorIs(t, err, kernel.ErrInvalidPrice)
	})

	t.Run("should reject an unconstructed price", func(t *testing.T) {
		_, err := kernel.NewLineItem(productID, "Mug", 1, kernel.Money{}, kernel.ZeroWeight())

		assert.ErrorIs(t, err, kernel.ErrInvalidPrice)
		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})
}

func TestLineItem_WithQuantity(t *testing.T) {
	li, err := kernel.NewLineItem(kernel.NewUUID(), "Mug", 1, usd(t, "2"), kernel.ZeroWeight())
	require.NoError(t, err)

	t.Run("should return an updated copy", func(t *testing.T) {
		updated, err := li.WithQuantity(5)

		require.NoError(t, err)
		assert.Equal(t, 5, updated.Quantity().Int())
		assert.Equal(t, 1, li.Quantity().Int())
		assert.False(t, li.IsEqual(updated))
	})

	t.Run("should reject zero", func(t *testing.T) {
		_, err := li.WithQuantity(0)

		assert.ErrorIs(t, err, kernel.ErrInvalidQuantity)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
