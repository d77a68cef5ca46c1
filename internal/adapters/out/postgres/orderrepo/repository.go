package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
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

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim persists a courier claim on an order. The update is conditional on
// the stored row still being unassigned and in a claimable status, which
// makes the claim atomic under concurrency: the first writer wins and every
// later claim sees zero affected rows. The status guard also protects a
// concurrent cancel: an in-flight claim whose pre-read copy was still open
// cannot overwrite the row once the cancel committed.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Courier() == nil {
		return order.ErrNotAssignedToCourier
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND courier_id IS NULL AND status IN (?, ?, ?)",
			dto.ID, order.Pending.String(), order.Confirmed.String(), order.Processing.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.claimConflict(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// claimConflict explains a claim that matched no row: the order is gone,
// already held by a courier, or no longer in a claimable status.
func (r *GormOrderRepository) claimConflict(ctx context.Context, id kernel.UUID) error {
	var row OrderDTO
	if err := r.db.WithContext(ctx).
		Select("courier_id", "status").
		First(&row, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return err
	}

	if row.CourierID != nil {
		return order.ErrAlreadyAssigned
	}
	return fmt.Errorf("%w: %s order cannot be claimed", order.ErrInvalidState, row.Status)
}

// CountActiveForCourier counts the courier's orders in an active delivery
// status (Ready or InTransit).
func (r *GormOrderRepository) CountActiveForCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("courier_id = ? AND status IN (?, ?)",
			courierID.Bytes(), order.Ready.String(), order.InTransit.String()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetAllUnassignedBefore retrieves unassigned, non-terminal orders created
// before the cutoff, oldest first.
func (r *GormOrderRepository) GetAllUnassignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id IS NULL AND created_at < ? AND status NOT IN (?, ?)",
			cutoff, order.Delivered.String(), order.Cancelled.String()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
