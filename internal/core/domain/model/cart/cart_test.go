package cart_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowAll = cart.CheckoutPolicyFunc(func(context.Context, *cart.Cart) (bool, error) {
	return true, nil
})

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(amount, "USD")
	require.NoError(t, err)
	return m
}

func kg(t *testing.T, v string) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(decimal.RequireFromString(v))
	require.NoError(t, err)
	return w
}

func newCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), "USD")
	require.NoError(t, err)
	return c
}

func TestNewCart(t *testing.T) {
	t.Run("should create an empty cart with zero totals", func(t *testing.T) {
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		id, customerID := kernel.NewUUID(), kernel.NewUUID()

		c, err := cart.NewCart(id, customerID, "usd", cart.WithClock(func() time.Time { return fixed }))

		require.NoError(t, err)
		assert.True(t, c.ID().IsEqual(id))
		assert.True(t, c.CustomerID().IsEqual(customerID))
		assert.Equal(t, kernel.Currency("USD"), c.Currency())
		assert.True(t, c.IsEmpty())
		assert.True(t, c.TotalCost().IsZero())
		assert.True(t, c.TotalWeight().Kilograms().IsZero())
		assert.Equal(t, fixed, c.CreatedAt())
		assert.Equal(t, fixed, c.UpdatedAt())
		assert.NoError(t, c.CheckInvariants())
	})

	t.Run("should join every constructor failure", func(t *testing.T) {
		c, err := cart.NewCart(kernel.UUID{}, kernel.UUID{}, "dollars")

		assert.Nil(t, c)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "cart id")
		assert.Contains(t, err.Error(), "customer id")
	})

	t.Run("zero value cart should refuse every operation", func(t *testing.T) {
		var c cart.Cart

		assert.ErrorIs(t, c.Validate(), cart.ErrCartIsNotConstructed)
		assert.ErrorIs(t, c.AddItem(kernel.NewUUID(), "x", 1, money(t, 1), kg(t, "1")), cart.ErrCartIsNotConstructed)
		assert.ErrorIs(t, c.Clear(), cart.ErrCartIsNotConstructed)
	})
}

func TestCart_AddItem(t *testing.T) {
	t.Run("should append new products in order", func(t *testing.T) {
		c := newCart(t)
		p1, p2 := kernel.NewUUID(), kernel.NewUUID()

		require.NoError(t, c.AddItem(p1, "Keyboard", 2, money(t, 1000), kg(t, "1.2")))
		require.NoError(t, c.AddItem(p2, "Mouse", 1, money(t, 500), kg(t, "0.3")))

		items := c.Items()
		require.Len(t, items, 2)
		assert.True(t, items[0].ProductID().IsEqual(p1))
		assert.True(t, items[1].ProductID().IsEqual(p2))
		assert.True(t, c.TotalCost().IsEqual(money(t, 2500)))
		assert.True(t, c.TotalWeight().IsEqual(kg(t, "2.7")))
		assert.Equal(t, 3, c.ItemCount())
	})

	t.Run("should merge an existing product and take the latest price and weight", func(t *testing.T) {
		c := newCart(t)
		p := kernel.NewUUID()
		require.NoError(t, c.AddItem(p, "Tea", 2, money(t, 10), kg(t, "0.5")))

		require.NoError(t, c.AddItem(p, "Green tea", 3, money(t, 12), kg(t, "0.4")))

		require.Len(t, c.Items(), 1)
		line, ok := c.Item(p)
		require.True(t, ok)
		assert.Equal(t, 5, line.Quantity().Int())
		assert.Equal(t, "Green tea", line.ProductName())
		assert.True(t, line.UnitPrice().IsEqual(money(t, 12)))
		assert.True(t, c.TotalCost().IsEqual(money(t, 60)))
		assert.True(t, c.TotalWeight().IsEqual(kg(t, "2")))
	})

	t.Run("should reject invalid input without touching the cart", func(t *testing.T) {
		c := newCart(t)
		p := kernel.NewUUID()
		require.NoError(t, c.AddItem(p, "Tea", 1, money(t, 10), kg(t, "0.5")))
		before := c.Items()
		eur, err := kernel.MoneyFromInt(10, "EUR")
		require.NoError(t, err)

		assert.ErrorIs(t, c.AddItem(p, "Tea", 0, money(t, 10), kg(t, "0.5")), cart.ErrInvalidQuantity)
		assert.ErrorIs(t, c.AddItem(p, "Tea", -3, money(t, 10), kg(t, "0.5")), cart.ErrInvalidQuantity)
		assert.ErrorIs(t, c.AddItem(p, "Tea", 1, money(t, 0), kg(t, "0.5")), cart.ErrInvalidPrice)
		assert.ErrorIs(t, c.AddItem(p, "Tea", 1, money(t, -5), kg(t, "0.5")), cart.ErrInvalidPrice)
		assert.ErrorIs(t, c.AddItem(p, "Tea", 1, money(t, 10), kernel.Weight{}), cart.ErrInvalidWeight)
		assert.ErrorIs(t, c.AddItem(p, "Tea", 1, eur, kg(t, "0.5")), cart.ErrCurrencyMismatch)

		assert.Equal(t, before, c.Items())
		assert.True(t, c.TotalCost().IsEqual(money(t, 10)))
	})
}

func TestCart_AddItem_StorageBounds(t *testing.T) {
	t.Run("a sub-cent fraction beyond four places never becomes a price", func(t *testing.T) {
		_, err := kernel.ParseMoney("0.00004", "USD")

		assert.ErrorIs(t, err, kernel.ErrAmountTooPrecise)
	})

	t.Run("the smallest storable price round-trips exactly", func(t *testing.T) {
		c := newCart(t)
		price, err := kernel.ParseMoney("0.0001", "USD")
		require.NoError(t, err)

		require.NoError(t, c.AddItem(kernel.NewUUID(), "Screw", 3, price, kg(t, "0.001")))

		assert.True(t, c.TotalCost().Amount().Equal(decimal.RequireFromString("0.0003")))
	})

	t.Run("should reject a total cost that would overflow without touching the cart", func(t *testing.T) {
		c := newCart(t)
		expensive, err := kernel.ParseMoney("999999999999999", "USD")
		require.NoError(t, err)
		require.NoError(t, c.AddItem(kernel.NewUUID(), "Yacht", 1, expensive, kg(t, "1")))
		before := c.Items()

		err = c.AddItem(kernel.NewUUID(), "Anchor", 1, money(t, 1), kg(t, "1"))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, before, c.Items())
		assert.True(t, c.TotalCost().IsEqual(expensive))
		assert.NoError(t, c.CheckInvariants())
	})

	t.Run("should reject a total weight that would overflow without touching the cart", func(t *testing.T) {
		c := newCart(t)
		p := kernel.NewUUID()
		require.NoError(t, c.AddItem(p, "Ballast", 1, money(t, 1), kg(t, "600000000")))

		err := c.UpdateItemQuantity(p, 2)

		require.ErrorIs(t, err, cart.ErrInvalidWeight)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 1, c.ItemCount())
		assert.True(t, c.TotalWeight().IsEqual(kg(t, "600000000")))
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c := newCart(t)
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, c.AddItem(p1, "A", 1, money(t, 100), kg(t, "1")))
	require.NoError(t, c.AddItem(p2, "B", 2, money(t, 50), kg(t, "2")))

	t.Run("should remove the line and recompute totals", func(t *testing.T) {
		require.NoError(t, c.RemoveItem(p1))

		_, ok := c.Item(p1)
		assert.False(t, ok)
		assert.True(t, c.TotalCost().IsEqual(money(t, 100)))
		assert.True(t, c.TotalWeight().IsEqual(kg(t, "4")))
	})

	t.Run("should ignore an absent product", func(t *testing.T) {
		assert.NoError(t, c.RemoveItem(kernel.NewUUID()))
		assert.Len(t, c.Items(), 1)
	})
}

func TestCart_UpdateItemQuantity(t *testing.T) {
	c := newCart(t)
	p := kernel.NewUUID()
	require.NoError(t, c.AddItem(p, "A", 1, money(t, 100), kg(t, "1")))

	t.Run("should set an absolute quantity", func(t *testing.T) {
		require.NoError(t, c.UpdateItemQuantity(p, 4))

		line, _ := c.Item(p)
		assert.Equal(t, 4, line.Quantity().Int())
		assert.True(t, c.TotalCost().IsEqual(money(t, 400)))
	})

	t.Run("should fail for an unknown product", func(t *testing.T) {
		err := c.UpdateItemQuantity(kernel.NewUUID(), 1)

		assert.ErrorIs(t, err, cart.ErrItemNotFound)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse zero instead of removing", func(t *testing.T) {
		err := c.UpdateItemQuantity(p, 0)

		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
		line, _ := c.Item(p)
		assert.Equal(t, 4, line.Quantity().Int())
	})
}

func TestCart_ClearAndTotals(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.AddItem(kernel.NewUUID(), "A", 3, money(t, 7), kg(t, "0.1")))

	first, err := c.CalculateTotals()
	require.NoError(t, err)
	second, err := c.CalculateTotals()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.Quantity)

	require.NoError(t, c.Clear())

	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalCost().IsZero())
	assert.Equal(t, 0, c.ItemCount())
	assert.NoError(t, c.CheckInvariants())
}

func TestCart_TotalsHoldAfterAnySequence(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	products := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	c := newCart(t)

	for range 500 {
		p := products[rng.IntN(len(products))]
		switch rng.IntN(3) {
		case 0:
			_ = c.AddItem(p, "product", rng.IntN(4), money(t, rng.Int64N(50)), kg(t, "0.25"))
		case 1:
			require.NoError(t, c.RemoveItem(p))
		case 2:
			_ = c.UpdateItemQuantity(p, rng.IntN(5))
		}

		expectedCost := decimal.Zero
		expectedWeight := decimal.Zero
		for _, item := range c.Items() {
			qty := decimal.NewFromInt(int64(item.Quantity().Int()))
			expectedCost = expectedCost.Add(item.UnitPrice().Amount().Mul(qty))
			expectedWeight = expectedWeight.Add(item.Weight().Kilograms().Mul(qty))
		}
		require.True(t, c.TotalCost().Amount().Equal(expectedCost))
		require.True(t, c.TotalWeight().Kilograms().Equal(expectedWeight))
		require.NoError(t, c.CheckInvariants())
	}
}

func TestCart_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail on an empty cart without asking the policy", func(t *testing.T) {
		called := false
		policy := cart.CheckoutPolicyFunc(func(context.Context, *cart.Cart) (bool, error) {
			called = true
			return true, nil
		})

		_, err := newCart(t).Checkout(ctx, policy)

		assert.ErrorIs(t, err, cart.ErrEmptyCart)
		assert.False(t, called)
	})

	t.Run("should fail when the policy says no", func(t *testing.T) {
		c := newCart(t)
		require.NoError(t, c.AddItem(kernel.NewUUID(), "A", 1, money(t, 1), kg(t, "1")))

		_, err := c.Checkout(ctx, cart.CheckoutPolicyFunc(func(context.Context, *cart.Cart) (bool, error) {
			return false, nil
		}))

		assert.ErrorIs(t, err, cart.ErrCheckoutNotAllowed)
	})

	t.Run("should surface policy errors", func(t *testing.T) {
		c := newCart(t)
		require.NoError(t, c.AddItem(kernel.NewUUID(), "A", 1, money(t, 1), kg(t, "1")))
		boom := errors.New("inventory down")

		_, err := c.Checkout(ctx, cart.CheckoutPolicyFunc(func(context.Context, *cart.Cart) (bool, error) {
			return false, boom
		}))

		assert.ErrorIs(t, err, boom)
	})

	t.Run("should return an independent snapshot", func(t *testing.T) {
		c := newCart(t)
		p := kernel.NewUUID()
		require.NoError(t, c.AddItem(p, "Lamp", 2, money(t, 30), kg(t, "1.5")))

		d, err := c.Checkout(ctx, allowAll)
		require.NoError(t, err)

		require.NoError(t, c.AddItem(p, "Renamed lamp", 5, money(t, 99), kg(t, "9")))
		require.NoError(t, c.Clear())

		items := d.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Lamp", items[0].ProductName())
		assert.Equal(t, 2, items[0].Quantity().Int())
		assert.True(t, d.TotalCost().IsEqual(money(t, 60)))
		assert.True(t, d.TotalWeight().IsEqual(kg(t, "3")))
		assert.True(t, d.CartID().IsEqual(c.ID()))
		assert.True(t, d.CustomerID().IsEqual(c.CustomerID()))
		assert.Equal(t, kernel.Currency("USD"), d.Currency())
	})
}

func TestRestoreCart(t *testing.T) {
	p := kernel.NewUUID()
	line, err := kernel.NewLineItem(p, "A", 2, money(t, 15), kg(t, "1"))
	require.NoError(t, err)
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should recompute totals from items", func(t *testing.T) {
		c, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), "USD",
			[]kernel.LineItem{line}, created, created.Add(time.Hour), 3)

		require.NoError(t, err)
		assert.True(t, c.TotalCost().IsEqual(money(t, 30)))
		assert.Equal(t, int64(3), c.Version())
		assert.Equal(t, created, c.CreatedAt())
	})

	t.Run("should reject duplicate products", func(t *testing.T) {
		_, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), "USD",
			[]kernel.LineItem{line, line}, created, created, 1)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject lines in another currency", func(t *testing.T) {
		_, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), "EUR",
			[]kernel.LineItem{line}, created, created, 1)

		assert.ErrorIs(t, err, cart.ErrCurrencyMismatch)
	})
}
