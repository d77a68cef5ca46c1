package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nlivrilik/internal/core/domain/events"
	"nlivrilik/internal/core/ports"
)

// MaxActiveDeliveries is the per-courier concurrency cap: the largest number
// of orders a courier may carry in an active delivery status (Ready or
// InTransit) at any time.
const MaxActiveDeliveries = 3

var (
	// ErrCourierUnavailable is returned when the courier has toggled
	// themselves unavailable for new work.
	ErrCourierUnavailable = errors.New("courier is not available for new deliveries")

	// ErrCapacityExceeded is returned when the claim would push the courier
	// past MaxActiveDeliveries concurrent active orders.
	ErrCapacityExceeded = errors.New("courier has reached the active delivery limit")
)

// TakeOrderCommandHandler orchestrates a courier claiming an open order.
//
// The claim is first-come-first-served. Preconditions are checked inside one
// transaction, in order, first failure wins: the order must exist, be
// unassigned, and be in a claimable status; then the courier must exist, be
// available, and be under the MaxActiveDeliveries cap. The final write goes
// through OrderRepository.Claim, whose conditional update guarantees that of
// two racing claims exactly one wins and the other receives
// order.ErrAlreadyAssigned.
//
// Example:
//
//	handler := NewTakeOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewTakeOrderCommand(orderID, courierID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyAssigned):
//	    log.Println("somebody else was faster")
//	case errors.Is(err, ErrCapacityExceeded):
//	    log.Println("courier is at capacity")
//	}
type TakeOrderCommandHandler struct {
	uowFactory OrderUserUoWFactory
	publisher  ports.EventPublisher
}

// NewTakeOrderCommandHandler creates a handler for order claim operations.
// Requires an OrderUserUoWFactory because a claim updates the order and the
// courier's active set in the same transaction.
func NewTakeOrderCommandHandler(
	uowFactory OrderUserUoWFactory,
	publisher ports.EventPublisher,
) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim command.
// Returns errors wrapping order.ErrAlreadyAssigned, order.ErrInvalidState,
// ErrCourierUnavailable, ErrCapacityExceeded or user.ErrNotACourier when a
// precondition fails.
func (h TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	userRepo := uow.UserRepository()

	claimedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = claimedOrder.CanBeClaimed(); err != nil {
		return err
	}

	courier, err := userRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	profile, err := courier.CourierProfile()
	if err != nil {
		return err
	}
	if !profile.IsAvailable() {
		return fmt.Errorf("%w: courier %s", ErrCourierUnavailable, courier.ID())
	}

	activeCount, err := orderRepo.CountActiveForCourier(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if activeCount >= MaxActiveDeliveries {
		return fmt.Errorf("%w: %d active deliveries, limit is %d",
			ErrCapacityExceeded, activeCount, MaxActiveDeliveries)
	}

	now := time.Now()
	previous := claimedOrder.Status()
	if err = claimedOrder.Assign(cmd.CourierID(), now); err != nil {
		return err
	}

	if err = courier.AddActiveDelivery(claimedOrder.ID()); err != nil {
		return err
	}

	if err = orderRepo.Claim(ctx, claimedOrder); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, courier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderStatusChanged(
		events.NewOrderStatusChanged(claimedOrder, previous, "Order claimed by courier", now))

	return nil
}
