package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	orderID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should keep emission order", func(t *testing.T) {
		var r event.Recorder
		r.Record(event.OrderDispatched{StatusChanged: event.NewStatusChanged(
			event.OrderDispatchedName, orderID, "Created", "Dispatched", at)})
		r.Record(event.OrderInTransit{StatusChanged: event.NewStatusChanged(
			event.OrderInTransitName, orderID, "Dispatched", "InTransit", at)})

		pending := r.PendingEvents()

		require.Len(t, pending, 2)
		assert.Equal(t, event.OrderDispatchedName, pending[0].Meta().Name)
		assert.Equal(t, event.OrderInTransitName, pending[1].Meta().Name)
	})

	t.Run("should hand out a copy and clear on demand", func(t *testing.T) {
		var r event.Recorder
		r.Record(event.OrderDelivered{StatusChanged: event.NewStatusChanged(
			event.OrderDeliveredName, orderID, "InTransit", "Delivered", at)})

		pending := r.PendingEvents()
		pending[0] = nil
		assert.NotNil(t, r.PendingEvents()[0])

		r.ClearEvents()
		assert.Empty(t, r.PendingEvents())
	})
}

func TestMetadata(t *testing.T) {
	orderID := kernel.NewUUID()
	local := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	m := event.NewMetadata(event.OrderCreatedName, orderID, local)

	assert.NoError(t, m.ID.Validate())
	assert.Equal(t, time.UTC, m.OccurredAt.Location())
	assert.True(t, m.OccurredAt.Equal(local))
	assert.False(t, m.ID.IsEqual(event.NewMetadata(event.OrderCreatedName, orderID, local).ID))
}

func TestOrderCreated_JSON(t *testing.T) {
	orderID := kernel.NewUUID()
	e := event.OrderCreated{
		Metadata:  event.NewMetadata(event.OrderCreatedName, orderID, time.Unix(0, 0)),
		Status:    "Created",
		Currency:  "USD",
		TotalCost: decimal.RequireFromString("38.00"),
		ItemCount: 3,
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "order.created", decoded["eventName"])
	assert.Equal(t, orderID.String(), decoded["aggregateId"])
	assert.Equal(t, "38", decoded["totalCost"])
	assert.InDelta(t, 3, decoded["itemCount"], 0)
}
