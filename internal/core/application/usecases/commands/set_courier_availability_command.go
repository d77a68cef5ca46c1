package commands

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand represents a courier toggling whether they
// accept new deliveries. Availability only gates future claims; it never
// affects deliveries already in progress.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to toggle courier availability.
func NewSetCourierAvailabilityCommand(courierID kernel.UUID, available bool) (SetCourierAvailabilityCommand, error) {
	availabilityCommand := SetCourierAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := availabilityCommand.setCourierID(courierID); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return availabilityCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Available returns the requested availability state.
func (c SetCourierAvailabilityCommand) Available() bool {
	return c.available
}

func (c *SetCourierAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
