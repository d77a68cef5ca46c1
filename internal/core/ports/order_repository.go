// Package ports defines the repository and outbound-service interfaces of the
// application core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim atomically assigns an unassigned order to the courier recorded
	// on the aggregate. The write is conditional on the stored row still
	// being unassigned, so two concurrent claims cannot both win: the loser
	// receives order.ErrAlreadyAssigned.
	Claim(ctx context.Context, aggregate *order.Order) error

	// CountActiveForCourier returns how many orders assigned to the courier
	// are currently in an active delivery status (Ready or InTransit).
	// Used to enforce the per-courier concurrency cap before a claim.
	CountActiveForCourier(ctx context.Context, courierID kernel.UUID) (int, error)

	// GetAllUnassignedBefore retrieves unassigned, non-terminal orders
	// created before the cutoff, oldest first. Used by the stale order
	// reminder job.
	GetAllUnassignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
