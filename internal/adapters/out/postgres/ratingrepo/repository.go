package ratingrepo

import (
	"context"
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/rating"
	"nlivrilik/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRatingRepository creates a new GORM rating repository.
func NewGormRatingRepository(db *gorm.DB, tracker aggregateTracker) *GormRatingRepository {
	return &GormRatingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rating to the database. The unique index on order_id
// resolves racing submissions: the loser's insert fails with a duplicate key
// error, surfaced as rating.ErrAlreadyRated.
func (r *GormRatingRepository) Add(ctx context.Context, aggregate *rating.DeliveryRating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return rating.ErrAlreadyRated
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderID retrieves the rating for an order.
func (r *GormRatingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*rating.DeliveryRating, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto RatingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rating", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
