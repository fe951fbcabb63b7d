// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders live in the orders table; their immutable line snapshots in order_items.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The customer index serves order history lookups.
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	CartID                uuid.UUID       `gorm:"type:uuid;not null"`
	Currency              string          `gorm:"type:char(3);not null"`
	TotalCost             decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	DeliveryCost          decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	DeliveryNotes         string          `gorm:"type:text;not null"`
	TransportMethod       int             `gorm:"type:smallint;not null"`
	EstimatedDeliveryTime time.Time       `gorm:"not null"`
	PaymentID             *uuid.UUID      `gorm:"type:uuid"`
	Status                int             `gorm:"type:smallint;not null"`
	CancellationReason    string          `gorm:"type:text;not null"`
	CreatedAt             time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version               int64           `gorm:"not null"`
	Items                 []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a line snapshot taken at checkout.
type OrderItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	WeightKg    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Google()

	var paymentID *uuid.UUID
	if id := o.PaymentID(); id != nil {
		raw := id.Google()
		paymentID = &raw
	}

	items := o.Items()
	dto := OrderDTO{
		ID:                    orderID,
		CustomerID:            o.CustomerID().Google(),
		CartID:                o.CartID().Google(),
		Currency:              o.Currency().String(),
		TotalCost:             o.TotalCost().Amount(),
		DeliveryCost:          o.DeliveryCost().Amount(),
		DeliveryNotes:         o.DeliveryNotes(),
		TransportMethod:       int(o.TransportMethod()),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime().UTC(),
		PaymentID:             paymentID,
		Status:                int(o.Status()),
		CancellationReason:    o.CancellationReason(),
		CreatedAt:             o.CreatedAt().UTC(),
		UpdatedAt:             o.UpdatedAt().UTC(),
		Version:               o.Version(),
		Items:                 make([]OrderItemDTO, 0, len(items)),
	}

	for i, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:     orderID,
			ProductID:   item.ProductID().Google(),
			Position:    i,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity().Int(),
			UnitPrice:   item.UnitPrice().Amount(),
			WeightKg:    item.Weight().Kilograms(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder,
// which re-checks the stored total against items and delivery cost.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	cartID, err := kernel.UUIDFromGoogle(dto.CartID)
	if err != nil {
		return nil, err
	}

	var paymentID *kernel.UUID
	if dto.PaymentID != nil {
		pID, paymentErr := kernel.UUIDFromGoogle(*dto.PaymentID)
		if paymentErr != nil {
			return nil, paymentErr
		}
		paymentID = &pID
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	deliveryCost, err := kernel.NewMoney(dto.DeliveryCost, currency)
	if err != nil {
		return nil, err
	}

	totalCost, err := kernel.NewMoney(dto.TotalCost, currency)
	if err != nil {
		return nil, err
	}

	items := make([]kernel.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := lineItemToDomain(itemDTO, currency)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                    id,
		CustomerID:            customerID,
		CartID:                cartID,
		Items:                 items,
		DeliveryCost:          deliveryCost,
		TotalCost:             totalCost,
		DeliveryNotes:         dto.DeliveryNotes,
		TransportMethod:       order.TransportMethod(dto.TransportMethod),
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime.UTC(),
		PaymentID:             paymentID,
		Status:                order.Status(dto.Status),
		CancellationReason:    dto.CancellationReason,
		CreatedAt:             dto.CreatedAt.UTC(),
		UpdatedAt:             dto.UpdatedAt.UTC(),
		Version:               dto.Version,
	})
}

func lineItemToDomain(dto OrderItemDTO, currency kernel.Currency) (kernel.LineItem, error) {
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return kernel.LineItem{}, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return kernel.LineItem{}, err
	}

	weight, err := kernel.NewWeight(dto.WeightKg)
	if err != nil {
		return kernel.LineItem{}, err
	}

	return kernel.NewLineItem(productID, dto.ProductName, dto.Quantity, price, weight)
}
