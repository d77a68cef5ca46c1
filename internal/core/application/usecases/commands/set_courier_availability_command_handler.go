package commands

import (
	"context"
)

// SetCourierAvailabilityCommandHandler toggles a courier's availability flag.
// Returns user.ErrNotACourier when the target user is not a courier.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewSetCourierAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetCourierAvailabilityCommandHandler(uowFactory UserUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle command.
func (h SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	courier, err := userRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = courier.SetAvailability(cmd.Available()); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
