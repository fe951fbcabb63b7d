package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewCartItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Currency    string          `json:"currency"`
	WeightKg    decimal.Decimal `json:"weightKg"`
}

type QuantityUpdate struct {
	Quantity int `json:"quantity"`
}

type Checkout struct {
	DeliveryCost    decimal.Decimal `json:"deliveryCost"`
	Currency        string          `json:"currency"`
	TransportMethod *string         `json:"transportMethod,omitempty"`
	DeliveryNotes   *string         `json:"deliveryNotes,omitempty"`
}

type CheckoutResult struct {
	OrderID uuid.UUID `json:"orderId"`
}

type Cancellation struct {
	Reason *string `json:"reason,omitempty"`
}

type PaymentLink struct {
	PaymentID uuid.UUID `json:"paymentId"`
}

type LineItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	WeightKg    decimal.Decimal `json:"weightKg"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Cart struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customerId"`
	Currency      string          `json:"currency"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	TotalWeightKg decimal.Decimal `json:"totalWeightKg"`
	Items         []LineItem      `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Order struct {
	ID                    uuid.UUID       `json:"id"`
	CustomerID            uuid.UUID       `json:"customerId"`
	CartID                uuid.UUID       `json:"cartId"`
	Status                string          `json:"status"`
	Currency              string          `json:"currency"`
	TotalCost             decimal.Decimal `json:"totalCost"`
	DeliveryCost          decimal.Decimal `json:"deliveryCost"`
	DeliveryNotes         string          `json:"deliveryNotes,omitempty"`
	TransportMethod       string          `json:"transportMethod"`
	EstimatedDeliveryTime time.Time       `json:"estimatedDeliveryTime"`
	PaymentID             *uuid.UUID      `json:"paymentId,omitempty"`
	CancellationReason    string          `json:"cancellationReason,omitempty"`
	Items                 []LineItem      `json:"items"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type OrderSummary struct {
	ID                    uuid.UUID       `json:"id"`
	Status                string          `json:"status"`
	Currency              string          `json:"currency"`
	TotalCost             decimal.Decimal `json:"totalCost"`
	TransportMethod       string          `json:"transportMethod"`
	EstimatedDeliveryTime time.Time       `json:"estimatedDeliveryTime"`
	ItemCount             int             `json:"itemCount"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// GetCustomerOrdersParams defines the query parameters of GetCustomerOrders.
type GetCustomerOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}
