package queries

import (
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scanLineItems reads product_id, product_name, quantity, unit_price and
// weight_kg rows into views.
func scanLineItems(query *gorm.DB) ([]LineItemView, error) {
	rows, err := query.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemView, 0)
	for rows.Next() {
		var (
			item      LineItemView
			productID uuid.UUID
		)

		if err = rows.Scan(
			&productID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Weight,
		); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromGoogle(productID)
		if idErr != nil {
			return nil, idErr
		}
		item.ProductID = id
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
