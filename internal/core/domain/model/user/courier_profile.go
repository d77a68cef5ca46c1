package user

import (
	"nlivrilik/internal/core/domain/model/kernel"
)

// CourierProfile is the courier variant of the User tagged union.
// It tracks whether the courier accepts new work, which orders they are
// currently carrying, and how many deliveries they have completed.
type CourierProfile struct {
	isAvailable         bool
	activeDeliveries    []kernel.UUID
	completedDeliveries int
}

// NewCourierProfile creates a fresh profile: available, no deliveries.
func NewCourierProfile() *CourierProfile {
	return &CourierProfile{isAvailable: true}
}

// RestoreCourierProfile reconstructs a profile from persistent storage.
func RestoreCourierProfile(
	isAvailable bool,
	activeDeliveries []kernel.UUID,
	completedDeliveries int,
) *CourierProfile {
	return &CourierProfile{
		isAvailable:         isAvailable,
		activeDeliveries:    activeDeliveries,
		completedDeliveries: completedDeliveries,
	}
}

// IsAvailable reports whether the courier accepts new deliveries.
func (p *CourierProfile) IsAvailable() bool {
	return p.isAvailable
}

// ActiveDeliveries returns a copy of the courier's active order references.
func (p *CourierProfile) ActiveDeliveries() []kernel.UUID {
	deliveries := make([]kernel.UUID, len(p.activeDeliveries))
	copy(deliveries, p.activeDeliveries)
	return deliveries
}

// HasActiveDelivery reports whether the given order is in the active set.
func (p *CourierProfile) HasActiveDelivery(orderID kernel.UUID) bool {
	for _, id := range p.activeDeliveries {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// CompletedDeliveries returns the number of deliveries the courier completed.
func (p *CourierProfile) CompletedDeliveries() int {
	return p.completedDeliveries
}
