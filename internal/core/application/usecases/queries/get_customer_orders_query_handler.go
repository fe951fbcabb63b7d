package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler lists order summaries for a customer.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle returns an empty slice, not an error, for a customer without orders.
// ItemCount is the sum of line quantities.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderSummaryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.currency,
			o.total_cost,
			o.transport_method,
			o.estimated_delivery_time,
			COALESCE(SUM(i.quantity), 0) AS item_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.customer_id = ?
			AND (? = 0 OR o.status = ?)
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id
		LIMIT ?
	`, query.CustomerID().Google(), int(query.Status()), int(query.Status()), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryView, 0)
	for rows.Next() {
		var (
			summary                 OrderSummaryView
			id                      uuid.UUID
			status, transportMethod int
		)

		if err = rows.Scan(
			&id,
			&status,
			&summary.Currency,
			&summary.TotalCost,
			&transportMethod,
			&summary.EstimatedDeliveryTime,
			&summary.ItemCount,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID
		summary.Status = order.Status(status).String()
		summary.TransportMethod = order.TransportMethod(transportMethod).String()
		summary.EstimatedDeliveryTime = summary.EstimatedDeliveryTime.UTC()
		summary.CreatedAt = summary.CreatedAt.UTC()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
