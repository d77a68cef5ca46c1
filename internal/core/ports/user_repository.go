package ports

import (
	"context"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates
// (admins, customers and couriers).
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	// Returns user-level uniqueness violations (duplicate email) as errors.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such user exists.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
