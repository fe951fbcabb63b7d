package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerCartQueryHandler reads a customer's cart with its lines.
type GetCustomerCartQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerCartQueryHandler(db *gorm.DB) GetCustomerCartQueryHandler {
	return GetCustomerCartQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError when the customer has no cart.
func (h GetCustomerCartQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerCartQuery,
) (GetCustomerCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerCartQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		response GetCustomerCartQueryResponse
		id       uuid.UUID
	)
	err := db.Raw(`
		SELECT
			id,
			currency,
			total_cost,
			total_weight,
			created_at,
			updated_at
		FROM carts
		WHERE customer_id = ?
	`, query.CustomerID().Google()).Row().Scan(
		&id,
		&response.Currency,
		&response.TotalCost,
		&response.TotalWeight,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCustomerCartQueryResponse{}, errs.NewObjectNotFoundError("customer cart", query.CustomerID().String())
	}
	if err != nil {
		return GetCustomerCartQueryResponse{}, err
	}

	cartID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return GetCustomerCartQueryResponse{}, err
	}
	response.ID = cartID
	response.CustomerID = query.CustomerID()
	response.CreatedAt = response.CreatedAt.UTC()
	response.UpdatedAt = response.UpdatedAt.UTC()

	response.Items, err = scanLineItems(db.Raw(`
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price,
			weight_kg
		FROM cart_items
		WHERE cart_id = ?
		ORDER BY position
	`, id))
	if err != nil {
		return GetCustomerCartQueryResponse{}, err
	}

	return response, nil
}
