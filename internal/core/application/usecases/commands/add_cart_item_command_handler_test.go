package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemCommandHandler_Handle_ExistingCart(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	existing := cartWithItems(t, customerID, 5)

	cmd, err := commands.NewAddCartItemCommand(customerID, productID, "Mug", 2, usd(t, 7), kg(t, "0.3"))
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", ctx, customerID).Return(existing, nil).Once(),
		cartRepo.On("Save", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewAddCartItemCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	line, ok := existing.Item(productID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity().Int())
	assert.True(t, usd(t, 19).IsEqual(existing.TotalCost()))

	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_CreatesCartOnFirstItem(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cartID := kernel.NewUUID()

	cmd, err := commands.NewAddCartItemCommand(customerID, kernel.NewUUID(), "Mug", 1, usd(t, 7), kg(t, "0.3"))
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	isNewCart := mock.MatchedBy(func(c *cart.Cart) bool {
		return c.ID().IsEqual(cartID) && c.CustomerID().IsEqual(customerID) && c.ItemCount() == 1
	})

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", ctx, customerID).
			Return(nil, errs.NewObjectNotFoundError("customer cart", customerID)).Once(),
		cartRepo.On("NextIdentity").Return(cartID).Once(),
		cartRepo.On("Save", ctx, isNewCart).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewAddCartItemCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_CurrencyMismatch(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	existing := cartWithItems(t, customerID, 5)

	eur, err := kernel.MoneyFromInt(3, kernel.Currency("EUR"))
	require.NoError(t, err)
	cmd, err := commands.NewAddCartItemCommand(customerID, kernel.NewUUID(), "Mug", 1, eur, kg(t, "1"))
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetByCustomer", ctx, customerID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewAddCartItemCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, cart.ErrCurrencyMismatch)
	assert.Equal(t, 1, existing.ItemCount())
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAddCartItemCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockCartUoWFactory)

	err := commands.NewAddCartItemCommandHandler(factory).Handle(t.Context(), commands.AddCartItemCommand{})

	require.ErrorIs(t, err, commands.ErrAddCartItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAddCartItemCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), "Mug", 1, usd(t, 7), kg(t, "1"))
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockCartUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err = commands.NewAddCartItemCommandHandler(factory).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
