package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/customers/{customerId}/cart)
	GetCustomerCart(ctx echo.Context, customerID uuid.UUID) error
	// (DELETE /api/v1/customers/{customerId}/cart)
	AbandonCart(ctx echo.Context, customerID uuid.UUID) error
	// (POST /api/v1/customers/{customerId}/cart/items)
	AddCartItem(ctx echo.Context, customerID uuid.UUID) error
	// (PUT /api/v1/customers/{customerId}/cart/items/{productId})
	UpdateCartItemQuantity(ctx echo.Context, customerID uuid.UUID, productID uuid.UUID) error
	// (DELETE /api/v1/customers/{customerId}/cart/items/{productId})
	RemoveCartItem(ctx echo.Context, customerID uuid.UUID, productID uuid.UUID) error
	// (POST /api/v1/customers/{customerId}/cart/clear)
	ClearCart(ctx echo.Context, customerID uuid.UUID) error
	// (POST /api/v1/customers/{customerId}/checkout)
	CheckoutCart(ctx echo.Context, customerID uuid.UUID) error
	// (GET /api/v1/customers/{customerId}/orders)
	GetCustomerOrders(ctx echo.Context, customerID uuid.UUID, params GetCustomerOrdersParams) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/dispatch)
	DispatchOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/in-transit)
	StartOrderTransit(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/payment)
	LinkOrderPayment(ctx echo.Context, orderID uuid.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUIDPath(ctx echo.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) withCustomer(ctx echo.Context, next func(uuid.UUID) error) error {
	customerID, err := bindUUIDPath(ctx, "customerId")
	if err != nil {
		return err
	}
	return next(customerID)
}

func (w *ServerInterfaceWrapper) withOrder(ctx echo.Context, next func(uuid.UUID) error) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return next(orderID)
}

func (w *ServerInterfaceWrapper) GetCustomerCart(ctx echo.Context) error {
	return w.withCustomer(ctx, func(id uuid.UUID) error { return w.Handler.GetCustomerCart(ctx, id) })
}

func (w *ServerInterfaceWrapper) AbandonCart(ctx echo.Context) error {
	return w.withCustomer(ctx, func(id uuid.UUID) error { return w.Handler.AbandonCart(ctx, id) })
}

func (w *ServerInterfaceWrapper) AddCartItem(ctx echo.Context) error {
	return w.withCustomer(ctx, func(id uuid.UUID) error { return w.Handler.AddCartItem(ctx, id) })
}

func (w *ServerInterfaceWrapper) UpdateCartItemQuantity(ctx echo.Context) error {
	return w.withCustomer(ctx, func(customerID uuid.UUID) error {
		productID, err := bindUUIDPath(ctx, "productId")
		if err != nil {
			return err
		}
		return w.Handler.UpdateCartItemQuantity(ctx, customerID, productID)
	})
}

func (w *ServerInterfaceWrapper) RemoveCartItem(ctx echo.Context) error {
	return w.withCustomer(ctx, func(customerID uuid.UUID) error {
		productID, err := bindUUIDPath(ctx, "productId")
		if err != nil {
			return err
		}
		return w.Handler.RemoveCartItem(ctx, customerID, productID)
	})
}

func (w *ServerInterfaceWrapper) ClearCart(ctx echo.Context) error {
	return w.withCustomer(ctx, func(id uuid.UUID) error { return w.Handler.ClearCart(ctx, id) })
}

func (w *ServerInterfaceWrapper) CheckoutCart(ctx echo.Context) error {
	return w.withCustomer(ctx, func(id uuid.UUID) error { return w.Handler.CheckoutCart(ctx, id) })
}

func (w *ServerInterfaceWrapper) GetCustomerOrders(ctx echo.Context) error {
	return w.withCustomer(ctx, func(id uuid.UUID) error {
		var params GetCustomerOrdersParams

		if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
		}
		if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
		}

		return w.Handler.GetCustomerOrders(ctx, id, params)
	})
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	return w.withOrder(ctx, func(id uuid.UUID) error { return w.Handler.GetOrder(ctx, id) })
}

func (w *ServerInterfaceWrapper) DispatchOrder(ctx echo.Context) error {
	return w.withOrder(ctx, func(id uuid.UUID) error { return w.Handler.DispatchOrder(ctx, id) })
}

func (w *ServerInterfaceWrapper) StartOrderTransit(ctx echo.Context) error {
	return w.withOrder(ctx, func(id uuid.UUID) error { return w.Handler.StartOrderTransit(ctx, id) })
}

func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	return w.withOrder(ctx, func(id uuid.UUID) error { return w.Handler.DeliverOrder(ctx, id) })
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	return w.withOrder(ctx, func(id uuid.UUID) error { return w.Handler.CancelOrder(ctx, id) })
}

func (w *ServerInterfaceWrapper) LinkOrderPayment(ctx echo.Context) error {
	return w.withOrder(ctx, func(id uuid.UUID) error { return w.Handler.LinkOrderPayment(ctx, id) })
}

// EchoRouter is the subset of echo.Echo / echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RouteMiddlewares attaches extra middleware to single operations, keyed by operationId.
type RouteMiddlewares map[string][]echo.MiddlewareFunc

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface, extra RouteMiddlewares) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/customers/:customerId/cart", w.GetCustomerCart, extra["GetCustomerCart"]...)
	router.DELETE("/api/v1/customers/:customerId/cart", w.AbandonCart, extra["AbandonCart"]...)
	router.POST("/api/v1/customers/:customerId/cart/items", w.AddCartItem, extra["AddCartItem"]...)
	router.PUT("/api/v1/customers/:customerId/cart/items/:productId", w.UpdateCartItemQuantity,
		extra["UpdateCartItemQuantity"]...)
	router.DELETE("/api/v1/customers/:customerId/cart/items/:productId", w.RemoveCartItem, extra["RemoveCartItem"]...)
	router.POST("/api/v1/customers/:customerId/cart/clear", w.ClearCart, extra["ClearCart"]...)
	router.POST("/api/v1/customers/:customerId/checkout", w.CheckoutCart, extra["CheckoutCart"]...)
	router.GET("/api/v1/customers/:customerId/orders", w.GetCustomerOrders, extra["GetCustomerOrders"]...)
	router.GET("/api/v1/orders/:orderId", w.GetOrder, extra["GetOrder"]...)
	router.POST("/api/v1/orders/:orderId/dispatch", w.DispatchOrder, extra["DispatchOrder"]...)
	router.POST("/api/v1/orders/:orderId/in-transit", w.StartOrderTransit, extra["StartOrderTransit"]...)
	router.POST("/api/v1/orders/:orderId/deliver", w.DeliverOrder, extra["DeliverOrder"]...)
	router.POST("/api/v1/orders/:orderId/cancel", w.CancelOrder, extra["CancelOrder"]...)
	router.POST("/api/v1/orders/:orderId/payment", w.LinkOrderPayment, extra["LinkOrderPayment"]...)
}
