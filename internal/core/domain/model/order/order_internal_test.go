package order

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, status Status) *Order {
	t.Helper()

	price, err := kernel.NewMoney(decimal.NewFromInt(40), kernel.Currency("USD"))
	require.NoError(t, err)
	weight, err := kernel.NewWeight(decimal.NewFromInt(6))
	require.NoError(t, err)
	line, err := kernel.NewLineItem(kernel.NewUUID(), "Chair", 2, price, weight)
	require.NoError(t, err)
	delivery, err := kernel.NewMoney(decimal.NewFromInt(10), kernel.Currency("USD"))
	require.NoError(t, err)
	total, err := kernel.NewMoney(decimal.NewFromInt(90), kernel.Currency("USD"))
	require.NoError(t, err)

	now := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	o, err := RestoreOrder(RestoreParams{
		ID:                    kernel.NewUUID(),
		CustomerID:            kernel.NewUUID(),
		CartID:                kernel.NewUUID(),
		Items:                 []kernel.LineItem{line},
		DeliveryCost:          delivery,
		TotalCost:             total,
		TransportMethod:       TransportCar,
		EstimatedDeliveryTime: now,
		Status:                status,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	require.NoError(t, err)
	return o
}

func TestOrder_DriftedTotalBlocksMutation(t *testing.T) {
	drift := func(t *testing.T, o *Order) {
		t.Helper()
		skewed, err := kernel.NewMoney(decimal.NewFromInt(91), kernel.Currency("USD"))
		require.NoError(t, err)
		o.totalCost = skewed
	}

	moves := map[Status]func(*Order) error{
		Created:    (*Order).MarkAsDispatched,
		Dispatched: (*Order).MarkAsInTransit,
		InTransit:  (*Order).MarkAsDelivered,
	}
	for from, move := range moves {
		t.Run("transition from "+from.String(), func(t *testing.T) {
			o := restoredOrder(t, from)
			drift(t, o)
			updatedAt := o.UpdatedAt()

			err := move(o)

			assert.ErrorIs(t, err, ErrTotalCostMismatch)
			assert.Equal(t, from, o.Status())
			assert.Equal(t, updatedAt, o.UpdatedAt())
			assert.Empty(t, o.PendingEvents())
		})
	}

	t.Run("cancel", func(t *testing.T) {
		o := restoredOrder(t, Created)
		drift(t, o)

		assert.ErrorIs(t, o.Cancel("customer request"), ErrTotalCostMismatch)
		assert.Equal(t, Created, o.Status())
		assert.Empty(t, o.CancellationReason())
	})

	t.Run("link payment", func(t *testing.T) {
		o := restoredOrder(t, Created)
		drift(t, o)

		assert.ErrorIs(t, o.LinkPayment(kernel.NewUUID()), ErrTotalCostMismatch)
		assert.Nil(t, o.PaymentID())
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("an illegal move reports the transition error first", func(t *testing.T) {
		o := restoredOrder(t, Delivered)
		drift(t, o)

		assert.ErrorIs(t, o.MarkAsDispatched(), ErrInvalidStateTransition)
	})
}
