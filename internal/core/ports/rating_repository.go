package ports

import (
	"context"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/rating"
)

// RatingRepository defines the persistence contract for delivery ratings.
// Ratings are append-only: there is no update or delete.
type RatingRepository interface {
	// Add persists a new rating. Returns an error wrapping
	// rating.ErrAlreadyRated when the order already has one.
	Add(ctx context.Context, aggregate *rating.DeliveryRating) error

	// GetByOrderID retrieves the rating for an order.
	// Returns errs.ObjectNotFoundError when the order has no rating.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*rating.DeliveryRating, error)
}
