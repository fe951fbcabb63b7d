package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order with its line snapshots.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError for an unknown order id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		response                GetOrderQueryResponse
		customerID, cartID      uuid.UUID
		paymentID               uuid.NullUUID
		status, transportMethod int
	)
	err := db.Raw(`
		SELECT
			customer_id,
			cart_id,
			status,
			currency,
			total_cost,
			delivery_cost,
			delivery_notes,
			transport_method,
			estimated_delivery_time,
			payment_id,
			cancellation_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Google()).Row().Scan(
		&customerID,
		&cartID,
		&status,
		&response.Currency,
		&response.TotalCost,
		&response.DeliveryCost,
		&response.DeliveryNotes,
		&transportMethod,
		&response.EstimatedDeliveryTime,
		&paymentID,
		&response.CancellationReason,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.ID = query.OrderID()
	if response.CustomerID, err = kernel.UUIDFromGoogle(customerID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CartID, err = kernel.UUIDFromGoogle(cartID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if paymentID.Valid {
		id, idErr := kernel.UUIDFromGoogle(paymentID.UUID)
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		response.PaymentID = &id
	}

	response.Status = order.Status(status).String()
	response.TransportMethod = order.TransportMethod(transportMethod).String()
	response.EstimatedDeliveryTime = response.EstimatedDeliveryTime.UTC()
	response.CreatedAt = response.CreatedAt.UTC()
	response.UpdatedAt = response.UpdatedAt.UTC()

	response.Items, err = scanLineItems(db.Raw(`
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price,
			weight_kg
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Google()))
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}
