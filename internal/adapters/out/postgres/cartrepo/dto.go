// Package cartrepo persists cart aggregates in the carts and cart_items tables.
package cartrepo

import (
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is the row shape of the carts table.
type CartDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Currency    string          `gorm:"type:char(3);not null"`
	TotalCost   decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	TotalWeight decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false;index"`
	Version     int64           `gorm:"not null"`
	Items       []CartItemDTO   `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO is one line of a cart. Position keeps the insertion order stable.
type CartItemDTO struct {
	CartID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	WeightKg    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func fromDomain(c *cart.Cart) CartDTO {
	cartID := c.ID().Google()
	items := c.Items()

	dto := CartDTO{
		ID:          cartID,
		CustomerID:  c.CustomerID().Google(),
		Currency:    c.Currency().String(),
		TotalCost:   c.TotalCost().Amount(),
		TotalWeight: c.TotalWeight().Kilograms(),
		CreatedAt:   c.CreatedAt().UTC(),
		UpdatedAt:   c.UpdatedAt().UTC(),
		Version:     c.Version(),
		Items:       make([]CartItemDTO, 0, len(items)),
	}

	for i, item := range items {
		dto.Items = append(dto.Items, CartItemDTO{
			CartID:      cartID,
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

// toDomain rebuilds the aggregate through cart.RestoreCart, so totals are
// recomputed from the stored lines rather than trusted.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	currency, err := kernel.NewCurrency(dto.Currency)
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

	return cart.RestoreCart(id, customerID, currency, items, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC(), dto.Version)
}

func lineItemToDomain(dto CartItemDTO, currency kernel.Currency) (kernel.LineItem, error) {
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
