package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) NextIdentity() kernel.UUID {
	return kernel.NewUUID()
}

// Save inserts the order with its lines on version 0. Later saves only touch
// the mutable columns, guarded by the version the order was loaded with.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if aggregate.Version() == 0 {
		dto.Version = 1
		if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: order %s already exists", ports.ErrConcurrentUpdate, aggregate.ID())
			}
			return err
		}
		if len(dto.Items) > 0 {
			if err := db.Create(&dto.Items).Error; err != nil {
				return err
			}
		}
	} else {
		dto.Version = aggregate.Version() + 1
		result := db.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
			Updates(map[string]any{
				"status":              dto.Status,
				"payment_id":          dto.PaymentID,
				"cancellation_reason": dto.CancellationReason,
				"updated_at":          dto.UpdatedAt,
				"version":             dto.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s at version %d", ports.ErrConcurrentUpdate, aggregate.ID(), aggregate.Version())
		}
	}

	aggregate.SyncVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID and locks its row for the current transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Items", orderByPosition).
		First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCustomer returns the customer's orders, newest first. No rows are locked.
func (r *GormOrderRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("customer_id = ?", customerID.Google()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
