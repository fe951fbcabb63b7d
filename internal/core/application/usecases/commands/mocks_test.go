package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) NextIdentity() kernel.UUID {
	args := m.Called()
	return args.Get(0).(kernel.UUID)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetStale(ctx context.Context, updatedBefore time.Time, limit int) ([]*cart.Cart, error) {
	args := m.Called(ctx, updatedBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextIdentity() kernel.UUID {
	args := m.Called()
	return args.Get(0).(kernel.UUID)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// MockUoW satisfies CartUoW, OrderUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func usd(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(amount, kernel.Currency("USD"))
	require.NoError(t, err)
	return m
}

func kg(t *testing.T, value string) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(decimal.RequireFromString(value))
	require.NoError(t, err)
	return w
}

// cartWithItems returns a USD cart holding one line per price, each weighing 1kg.
func cartWithItems(t *testing.T, customerID kernel.UUID, prices ...int64) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.Currency("USD"))
	require.NoError(t, err)
	for _, p := range prices {
		require.NoError(t, c.AddItem(kernel.NewUUID(), "Item", 1, usd(t, p), kg(t, "1")))
	}
	return c
}

var allowCheckout = cart.CheckoutPolicyFunc(func(context.Context, *cart.Cart) (bool, error) {
	return true, nil
})

func pricingService(t *testing.T) services.OrderPricingService {
	t.Helper()
	svc, err := services.NewOrderPricingService(services.DefaultTransportPolicy(), func() time.Time { return fixedNow })
	require.NoError(t, err)
	return svc
}

// createdOrder checks out a two line cart into a fresh order with no pending events.
func createdOrder(t *testing.T) *order.Order {
	t.Helper()
	c := cartWithItems(t, kernel.NewUUID(), 25, 10)
	descriptor, err := c.Checkout(t.Context(), allowCheckout)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), descriptor, usd(t, 3), pricingService(t))
	require.NoError(t, err)
	o.ClearEvents()
	return o
}
