package cartrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.CartRepository = (*GormCartRepository)(nil)

// GormCartRepository implements ports.CartRepository using GORM.
//
// Reads lock the cart row (SELECT ... FOR UPDATE) so that, inside a unit of
// work, concurrent commands on the same cart are serialized. Writes also check
// the version column, which catches writers that skipped the lock.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCartRepository) NextIdentity() kernel.UUID {
	return kernel.NewUUID()
}

// Save inserts a cart on version 0 and otherwise updates it, replacing all
// of its lines. On success the aggregate version is bumped to the stored one.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if aggregate.Version() == 0 {
		dto.Version = 1
		if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: customer %s already has a cart", ports.ErrConcurrentUpdate, aggregate.CustomerID())
			}
			return err
		}
	} else {
		dto.Version = aggregate.Version() + 1
		result := db.Model(&CartDTO{}).
			Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
			Updates(map[string]any{
				"currency":     dto.Currency,
				"total_cost":   dto.TotalCost,
				"total_weight": dto.TotalWeight,
				"updated_at":   dto.UpdatedAt,
				"version":      dto.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: cart %s at version %d", ports.ErrConcurrentUpdate, aggregate.ID(), aggregate.Version())
		}

		if err := db.Where("cart_id = ?", dto.ID).Delete(&CartItemDTO{}).Error; err != nil {
			return err
		}
	}

	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	aggregate.SyncVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.lockedQuery(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.lockedQuery(ctx).First(&dto, "customer_id = ?", customerID.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer cart", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStale returns the oldest carts first. Rows locked by another transaction
// are skipped so that sweeps never wait on a customer's in-flight command.
func (r *GormCartRepository) GetStale(ctx context.Context, updatedBefore time.Time, limit int) ([]*cart.Cart, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []CartDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Preload("Items", orderByPosition).
		Where("updated_at < ?", updatedBefore.UTC()).
		Order("updated_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	carts := make([]*cart.Cart, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}

	return carts, nil
}

// Remove deletes the cart, its lines go with it through ON DELETE CASCADE.
func (r *GormCartRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("id = ?", id.Google()).Delete(&CartDTO{}).Error
}

func (r *GormCartRepository) lockedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Items", orderByPosition)
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
