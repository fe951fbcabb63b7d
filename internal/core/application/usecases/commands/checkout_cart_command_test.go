package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCartCommand(t *testing.T) {
	t.Run("automatic transport", func(t *testing.T) {
		customerID := kernel.NewUUID()
		cmd, err := commands.NewCheckoutCartCommand(customerID, usd(t, 5), order.TransportUnknown, "ring twice")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, customerID.IsEqual(cmd.CustomerID()))
		assert.Equal(t, order.TransportUnknown, cmd.TransportMethod())
		assert.Equal(t, "ring twice", cmd.DeliveryNotes())
		assert.True(t, usd(t, 5).IsEqual(cmd.DeliveryCost()))
	})

	t.Run("explicit transport", func(t *testing.T) {
		cmd, err := commands.NewCheckoutCartCommand(kernel.NewUUID(), usd(t, 5), order.TransportTruck, "")
		require.NoError(t, err)
		assert.Equal(t, order.TransportTruck, cmd.TransportMethod())
	})

	t.Run("unknown transport value", func(t *testing.T) {
		_, err := commands.NewCheckoutCartCommand(kernel.NewUUID(), usd(t, 5), order.TransportMethod(42), "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := commands.NewCheckoutCartCommand(kernel.UUID{}, usd(t, 5), order.TransportUnknown, "")
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
