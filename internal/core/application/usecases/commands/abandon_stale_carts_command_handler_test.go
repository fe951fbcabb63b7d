package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAbandonStaleCartsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stale := []*cart.Cart{
		cartWithItems(t, kernel.NewUUID(), 5),
		cartWithItems(t, kernel.NewUUID()),
	}

	cmd, err := commands.NewAbandonStaleCartsCommand(24*time.Hour, 50)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetStale", ctx, fixedNow.Add(-24*time.Hour), 50).Return(stale, nil).Once(),
		cartRepo.On("Remove", ctx, stale[0].ID()).Return(nil).Once(),
		cartRepo.On("Remove", ctx, stale[1].ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAbandonStaleCartsCommandHandler(factory, func() time.Time { return fixedNow })
	removed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	cartRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAbandonStaleCartsCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAbandonStaleCartsCommand(time.Hour, 10)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo).Once()
	cartRepo.On("GetStale", ctx, mock.AnythingOfType("time.Time"), 10).Return([]*cart.Cart{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	removed, err := commands.NewAbandonStaleCartsCommandHandler(factory, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestAbandonStaleCartsCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAbandonStaleCartsCommand(time.Hour, 10)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetStale", ctx, mock.Anything, 10).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	removed, err := commands.NewAbandonStaleCartsCommandHandler(factory, nil).Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
	assert.Zero(t, removed)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
