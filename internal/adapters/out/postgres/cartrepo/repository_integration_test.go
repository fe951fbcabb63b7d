package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.Require().NoError(migrations.Up(connStr))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carts CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = cartrepo.NewGormCartRepository(suite.db, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_NewCart_RoundTrips() {
	ctx := context.Background()
	c := suite.newCart(time.Now(), "12.50", "3.00")

	suite.Require().NoError(suite.repository.Save(ctx, c))
	suite.Equal(int64(1), c.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", c.ID(), c)

	loaded, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)

	suite.True(c.ID().IsEqual(loaded.ID()))
	suite.True(c.CustomerID().IsEqual(loaded.CustomerID()))
	suite.Equal(c.Currency(), loaded.Currency())
	suite.Equal(int64(1), loaded.Version())
	suite.True(c.TotalCost().IsEqual(loaded.TotalCost()), "%s != %s", c.TotalCost(), loaded.TotalCost())
	suite.True(c.TotalWeight().IsEqual(loaded.TotalWeight()))

	suite.Require().Len(loaded.Items(), 2)
	for i, item := range c.Items() {
		suite.True(item.IsEqual(loaded.Items()[i]), "line %d differs", i)
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_UpdateReplacesLines() {
	ctx := context.Background()
	c := suite.newCart(time.Now(), "10", "4")
	suite.Require().NoError(suite.repository.Save(ctx, c))

	first := c.Items()[0].ProductID()
	suite.Require().NoError(c.RemoveItem(first))
	suite.Require().NoError(c.UpdateItemQuantity(c.Items()[0].ProductID(), 5))
	suite.Require().NoError(suite.repository.Save(ctx, c))
	suite.Equal(int64(2), c.Version())

	loaded, err := suite.repository.GetByCustomer(ctx, c.CustomerID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(5, loaded.Items()[0].Quantity().Int())
	suite.True(decimal.RequireFromString("20").Equal(loaded.TotalCost().Amount()))

	var lines int64
	suite.Require().NoError(suite.db.Table("cart_items").Count(&lines).Error)
	suite.Equal(int64(1), lines)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_StaleVersion_Fails() {
	ctx := context.Background()
	c := suite.newCart(time.Now(), "10")
	suite.Require().NoError(suite.repository.Save(ctx, c))

	first, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Clear())
	suite.Require().NoError(suite.repository.Save(ctx, first))

	suite.Require().NoError(second.Clear())
	err = suite.repository.Save(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_SecondCartForCustomer_Fails() {
	ctx := context.Background()
	c := suite.newCart(time.Now(), "10")
	suite.Require().NoError(suite.repository.Save(ctx, c))

	duplicate, err := cart.NewCart(kernel.NewUUID(), c.CustomerID(), c.Currency())
	suite.Require().NoError(err)

	err = suite.repository.Save(ctx, duplicate)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByCustomer(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetStale_ReturnsOldestFirstUpToLimit() {
	ctx := context.Background()
	now := time.Now().UTC()

	oldest := suite.newCart(now.Add(-72*time.Hour), "1")
	older := suite.newCart(now.Add(-48*time.Hour))
	old := suite.newCart(now.Add(-30*time.Hour), "2")
	fresh := suite.newCart(now, "3")
	for _, c := range []*cart.Cart{fresh, old, oldest, older} {
		suite.Require().NoError(suite.repository.Save(ctx, c))
	}

	stale, err := suite.repository.GetStale(ctx, now.Add(-24*time.Hour), 2)
	suite.Require().NoError(err)

	suite.Require().Len(stale, 2)
	suite.True(oldest.ID().IsEqual(stale[0].ID()))
	suite.True(older.ID().IsEqual(stale[1].ID()))
	suite.True(stale[1].IsEmpty())

	all, err := suite.repository.GetStale(ctx, now.Add(-24*time.Hour), 10)
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *CartRepositoryIntegrationTestSuite) TestRemove_DeletesCartAndLines() {
	ctx := context.Background()
	c := suite.newCart(time.Now(), "10", "20")
	suite.Require().NoError(suite.repository.Save(ctx, c))

	suite.Require().NoError(suite.repository.Remove(ctx, c.ID()))

	_, err := suite.repository.Get(ctx, c.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var lines int64
	suite.Require().NoError(suite.db.Table("cart_items").Count(&lines).Error)
	suite.Zero(lines)

	suite.Require().NoError(suite.repository.Remove(ctx, c.ID()))
}

// newCart builds a USD cart whose clock is pinned to at, with one 0.5kg line per price.
func (suite *CartRepositoryIntegrationTestSuite) newCart(at time.Time, prices ...string) *cart.Cart {
	at = at.UTC().Truncate(time.Microsecond)
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), kernel.Currency("USD"),
		cart.WithClock(func() time.Time { return at }))
	suite.Require().NoError(err)

	weight, err := kernel.NewWeight(decimal.RequireFromString("0.5"))
	suite.Require().NoError(err)

	for _, p := range prices {
		price, priceErr := kernel.ParseMoney(p, kernel.Currency("USD"))
		suite.Require().NoError(priceErr)
		suite.Require().NoError(c.AddItem(kernel.NewUUID(), "Item "+p, 1, price, weight))
	}
	return c
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
