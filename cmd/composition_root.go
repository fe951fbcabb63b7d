package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pricing    services.OrderPricingService
	policy     cart.CheckoutPolicy
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases. publisher may be nil (events are
// dropped after commit); stock may be nil (every non-empty cart may check out).
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	stock ports.StockChecker,
	logger *slog.Logger,
) (CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pricing, err := services.NewOrderPricingService(config.TransportPolicy, time.Now)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("pricing service: %w", err)
	}

	var policy cart.CheckoutPolicy = cart.CheckoutPolicyFunc(func(context.Context, *cart.Cart) (bool, error) {
		return true, nil
	})
	if stock != nil {
		if policy, err = services.NewStockCheckoutPolicy(stock); err != nil {
			return CompositionRoot{}, fmt.Errorf("checkout policy: %w", err)
		}
	} else {
		logger.Warn("no inventory service configured, checkout skips stock checks")
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		pricing:    pricing,
		policy:     policy,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCartItemQuantityCommandHandler() commands.UpdateCartItemQuantityCommandHandler {
	return commands.NewUpdateCartItemQuantityCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateAbandonCartCommandHandler() commands.AbandonCartCommandHandler {
	return commands.NewAbandonCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateAbandonStaleCartsCommandHandler() commands.AbandonStaleCartsCommandHandler {
	return commands.NewAbandonStaleCartsCommandHandler(c.cartUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreateCheckoutCartCommandHandler() commands.CheckoutCartCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCartCommandHandler(f, c.policy, c.pricing)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateLinkOrderPaymentCommandHandler() commands.LinkOrderPaymentCommandHandler {
	return commands.NewLinkOrderPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetCustomerCartQueryHandler() queries.GetCustomerCartQueryHandler {
	return queries.NewGetCustomerCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

// HTTPHandlers bundles every use case the HTTP adapter dispatches to.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		AddCartItem:            c.CreateAddCartItemCommandHandler(),
		RemoveCartItem:         c.CreateRemoveCartItemCommandHandler(),
		UpdateCartItemQuantity: c.CreateUpdateCartItemQuantityCommandHandler(),
		ClearCart:              c.CreateClearCartCommandHandler(),
		AbandonCart:            c.CreateAbandonCartCommandHandler(),
		CheckoutCart:           c.CreateCheckoutCartCommandHandler(),
		AdvanceOrder:           c.CreateAdvanceOrderCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
		LinkOrderPayment:       c.CreateLinkOrderPaymentCommandHandler(),
		GetCustomerCart:        c.CreateGetCustomerCartQueryHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetCustomerOrders:      c.CreateGetCustomerOrdersQueryHandler(),
	}
}

// CreateJobManager registers the background jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sweep, err := jobs.NewStaleCartSweepJob(
		c.CreateAbandonStaleCartsCommandHandler(),
		c.config.StaleCartSchedule,
		c.config.StaleCartTTL,
		c.config.StaleCartBatchSize,
		c.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("stale cart sweep job: %w", err)
	}

	jm := jobs.NewJobManager()
	jm.Register("stale cart sweep", sweep)
	return jm, nil
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
