package http

import (
	"context"
	"log/slog"
	"net/http"

	"ordering/internal/adapters/in/http/api"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CommandHandler is satisfied by the use case handlers that return nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is satisfied by the checkout handler and every query handler.
type ResultHandler[In any, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers groups the use cases the HTTP API dispatches to.
type Handlers struct {
	// Command handlers
	AddCartItem            CommandHandler[commands.AddCartItemCommand]
	RemoveCartItem         CommandHandler[commands.RemoveCartItemCommand]
	UpdateCartItemQuantity CommandHandler[commands.UpdateCartItemQuantityCommand]
	ClearCart              CommandHandler[commands.ClearCartCommand]
	AbandonCart            CommandHandler[commands.AbandonCartCommand]
	CheckoutCart           ResultHandler[commands.CheckoutCartCommand, kernel.UUID]
	AdvanceOrder           CommandHandler[commands.AdvanceOrderCommand]
	CancelOrder            CommandHandler[commands.CancelOrderCommand]
	LinkOrderPayment       CommandHandler[commands.LinkOrderPaymentCommand]

	// Query handlers
	GetCustomerCart   ResultHandler[queries.GetCustomerCartQuery, queries.GetCustomerCartQueryResponse]
	GetOrder          ResultHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetCustomerOrders ResultHandler[queries.GetCustomerOrdersQuery, []queries.OrderSummaryView]
}

// Server implements api.ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With(slog.String("component", "http_server")),
	}
}

// GetCustomerCart handles GET /api/v1/customers/{customerId}/cart.
func (s *Server) GetCustomerCart(ctx echo.Context, customerID uuid.UUID) error {
	id, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	query, err := queries.NewGetCustomerCartQuery(id)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	view, err := s.handlers.GetCustomerCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve cart")
	}

	return ctx.JSON(http.StatusOK, api.Cart{
		ID:            view.ID.Google(),
		CustomerID:    view.CustomerID.Google(),
		Currency:      view.Currency,
		TotalCost:     view.TotalCost,
		TotalWeightKg: view.TotalWeight,
		Items:         toLineItems(view.Items),
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	})
}

// AbandonCart handles DELETE /api/v1/customers/{customerId}/cart.
func (s *Server) AbandonCart(ctx echo.Context, customerID uuid.UUID) error {
	id, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	cmd, err := commands.NewAbandonCartCommand(id)
	if err != nil {
		return badRequest(ctx, "Invalid cart data: "+err.Error())
	}

	if err := s.handlers.AbandonCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to abandon cart")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddCartItem handles POST /api/v1/customers/{customerId}/cart/items.
func (s *Server) AddCartItem(ctx echo.Context, customerID uuid.UUID) error {
	var body api.NewCartItem
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customer, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}
	product, err := kernel.UUIDFromGoogle(body.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	currency, err := kernel.NewCurrency(body.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid currency: "+err.Error())
	}
	price, err := kernel.NewMoney(body.UnitPrice, currency)
	if err != nil {
		return badRequest(ctx, "Invalid unit price: "+err.Error())
	}
	weight, err := kernel.NewWeight(body.WeightKg)
	if err != nil {
		return badRequest(ctx, "Invalid weight: "+err.Error())
	}

	cmd, err := commands.NewAddCartItemCommand(customer, product, body.ProductName, body.Quantity, price, weight)
	if err != nil {
		return badRequest(ctx, "Invalid cart item: "+err.Error())
	}

	if err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to add cart item")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartItemQuantity handles PUT /api/v1/customers/{customerId}/cart/items/{productId}.
func (s *Server) UpdateCartItemQuantity(ctx echo.Context, customerID uuid.UUID, productID uuid.UUID) error {
	var body api.QuantityUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customer, product, err := cartLine(customerID, productID)
	if err != nil {
		return badRequest(ctx, "Invalid identifiers: "+err.Error())
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(customer, product, body.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid quantity update: "+err.Error())
	}

	if err := s.handlers.UpdateCartItemQuantity.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to update cart item")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/customers/{customerId}/cart/items/{productId}.
func (s *Server) RemoveCartItem(ctx echo.Context, customerID uuid.UUID, productID uuid.UUID) error {
	customer, product, err := cartLine(customerID, productID)
	if err != nil {
		return badRequest(ctx, "Invalid identifiers: "+err.Error())
	}

	cmd, err := commands.NewRemoveCartItemCommand(customer, product)
	if err != nil {
		return badRequest(ctx, "Invalid cart item: "+err.Error())
	}

	if err := s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to remove cart item")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles POST /api/v1/customers/{customerId}/cart/clear.
func (s *Server) ClearCart(ctx echo.Context, customerID uuid.UUID) error {
	id, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	cmd, err := commands.NewClearCartCommand(id)
	if err != nil {
		return badRequest(ctx, "Invalid cart data: "+err.Error())
	}

	if err := s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to clear cart")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CheckoutCart handles POST /api/v1/customers/{customerId}/checkout.
func (s *Server) CheckoutCart(ctx echo.Context, customerID uuid.UUID) error {
	var body api.Checkout
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customer, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}
	currency, err := kernel.NewCurrency(body.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid currency: "+err.Error())
	}
	deliveryCost, err := kernel.NewMoney(body.DeliveryCost, currency)
	if err != nil {
		return badRequest(ctx, "Invalid delivery cost: "+err.Error())
	}

	transport := order.TransportUnknown
	if body.TransportMethod != nil && *body.TransportMethod != "" {
		if transport, err = order.ParseTransportMethod(*body.TransportMethod); err != nil {
			return badRequest(ctx, "Invalid transport method: "+err.Error())
		}
	}

	var notes string
	if body.DeliveryNotes != nil {
		notes = *body.DeliveryNotes
	}

	cmd, err := commands.NewCheckoutCartCommand(customer, deliveryCost, transport, notes)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	orderID, err := s.handlers.CheckoutCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to checkout cart")
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+orderID.String())
	return ctx.JSON(http.StatusCreated, api.CheckoutResult{OrderID: orderID.Google()})
}

// GetCustomerOrders handles GET /api/v1/customers/{customerId}/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context, customerID uuid.UUID, params api.GetCustomerOrdersParams) error {
	id, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	status := order.Unknown
	if params.Status != nil {
		if status, err = order.ParseStatus(*params.Status); err != nil {
			return badRequest(ctx, "Invalid status: "+err.Error())
		}
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetCustomerOrdersQuery(id, status, limit)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	views, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]api.OrderSummary, len(views))
	for i, v := range views {
		response[i] = api.OrderSummary{
			ID:                    v.ID.Google(),
			Status:                v.Status,
			Currency:              v.Currency,
			TotalCost:             v.TotalCost,
			TransportMethod:       v.TransportMethod,
			EstimatedDeliveryTime: v.EstimatedDeliveryTime,
			ItemCount:             v.ItemCount,
			CreatedAt:             v.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	var paymentID *uuid.UUID
	if view.PaymentID != nil {
		p := view.PaymentID.Google()
		paymentID = &p
	}

	return ctx.JSON(http.StatusOK, api.Order{
		ID:                    view.ID.Google(),
		CustomerID:            view.CustomerID.Google(),
		CartID:                view.CartID.Google(),
		Status:                view.Status,
		Currency:              view.Currency,
		TotalCost:             view.TotalCost,
		DeliveryCost:          view.DeliveryCost,
		DeliveryNotes:         view.DeliveryNotes,
		TransportMethod:       view.TransportMethod,
		EstimatedDeliveryTime: view.EstimatedDeliveryTime,
		PaymentID:             paymentID,
		CancellationReason:    view.CancellationReason,
		Items:                 toLineItems(view.Items),
		CreatedAt:             view.CreatedAt,
		UpdatedAt:             view.UpdatedAt,
	})
}

// DispatchOrder handles POST /api/v1/orders/{orderId}/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context, orderID uuid.UUID) error {
	return s.advance(ctx, orderID, commands.StepDispatch)
}

// StartOrderTransit handles POST /api/v1/orders/{orderId}/in-transit.
func (s *Server) StartOrderTransit(ctx echo.Context, orderID uuid.UUID) error {
	return s.advance(ctx, orderID, commands.StepInTransit)
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderID uuid.UUID) error {
	return s.advance(ctx, orderID, commands.StepDeliver)
}

func (s *Server) advance(ctx echo.Context, orderID uuid.UUID, step commands.OrderStep) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(id, step)
	if err != nil {
		return badRequest(ctx, "Invalid order step: "+err.Error())
	}

	if err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to update order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID uuid.UUID) error {
	var body api.Cancellation
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}

	cmd, err := commands.NewCancelOrderCommand(id, reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	if err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to cancel order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// LinkOrderPayment handles POST /api/v1/orders/{orderId}/payment.
func (s *Server) LinkOrderPayment(ctx echo.Context, orderID uuid.UUID) error {
	var body api.PaymentLink
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	paymentID, err := kernel.UUIDFromGoogle(body.PaymentID)
	if err != nil {
		return badRequest(ctx, "Invalid payment id: "+err.Error())
	}

	cmd, err := commands.NewLinkOrderPaymentCommand(id, paymentID)
	if err != nil {
		return badRequest(ctx, "Invalid payment link: "+err.Error())
	}

	if err := s.handlers.LinkOrderPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to link payment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func cartLine(customerID, productID uuid.UUID) (kernel.UUID, kernel.UUID, error) {
	customer, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	product, err := kernel.UUIDFromGoogle(productID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return customer, product, nil
}

func toLineItems(items []queries.LineItemView) []api.LineItem {
	out := make([]api.LineItem, len(items))
	for i, item := range items {
		out[i] = api.LineItem{
			ProductID:   item.ProductID.Google(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			WeightKg:    item.Weight,
			Subtotal:    item.Subtotal,
		}
	}
	return out
}
