package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	for _, step := range []commands.OrderStep{commands.StepDispatch, commands.StepInTransit, commands.StepDeliver} {
		cmd, err := commands.NewAdvanceOrderCommand(orderID, step)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, step, cmd.Step())
		assert.True(t, orderID.IsEqual(cmd.OrderID()))
	}

	_, err := commands.NewAdvanceOrderCommand(orderID, commands.OrderStep("teleport"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAdvanceOrderCommand(kernel.UUID{}, commands.StepDispatch)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.AdvanceOrderCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrAdvanceOrderCommandIsNotConstructed)
}

func TestNewCancelOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCancelOrderCommand(orderID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, "changed my mind", cmd.Reason())

	_, err = commands.NewCancelOrderCommand(kernel.UUID{}, "")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.CancelOrderCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
}

func TestNewLinkOrderPaymentCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	paymentID := kernel.NewUUID()

	cmd, err := commands.NewLinkOrderPaymentCommand(orderID, paymentID)
	require.NoError(t, err)
	assert.True(t, paymentID.IsEqual(cmd.PaymentID()))

	_, err = commands.NewLinkOrderPaymentCommand(orderID, kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewAbandonStaleCartsCommand(t *testing.T) {
	cmd, err := commands.NewAbandonStaleCartsCommand(72*time.Hour, 0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultStaleCartBatchSize, cmd.BatchSize())
	assert.Equal(t, 72*time.Hour, cmd.MaxAge())

	_, err = commands.NewAbandonStaleCartsCommand(0, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "max age")
	assert.Contains(t, err.Error(), "batch size")
}
