package commands

import (
	"context"
	"errors"
	"time"

	"nlivrilik/internal/core/domain/events"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/ports"
	"nlivrilik/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a status transition to an order.
//
// The aggregate enforces the role gates and the state machine. The handler's
// job is coordination: when the transition lands the order in Delivered or
// Cancelled and a courier is assigned, the courier's active set is updated in
// the same transaction so order state and courier bookkeeping never diverge.
// A request for the order's current status is a tolerated no-op: nothing is
// written and no event is published.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUserUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUserUoWFactory,
	publisher ports.EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command.
// Returns errors wrapping order.ErrForbidden or order.ErrInvalidState when
// the aggregate rejects the transition.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	updatedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	previous := updatedOrder.Status()
	changed, err := updatedOrder.ChangeStatus(cmd.Target(), cmd.Actor(), cmd.Note(), now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = h.syncCourierBookkeeping(ctx, uow.UserRepository(), updatedOrder); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, updatedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// The aggregate fills in a role-aware default when the caller supplied no
	// note; the event carries the note the history recorded.
	history := updatedOrder.History()
	appliedNote := history[len(history)-1].Note

	h.publisher.PublishOrderStatusChanged(
		events.NewOrderStatusChanged(updatedOrder, previous, appliedNote, now))

	return nil
}

// syncCourierBookkeeping keeps the assigned courier's active set in step with
// terminal transitions: Delivered credits the completed counter, Cancelled
// just releases the slot. A missing courier record is tolerated so orders can
// still reach a terminal state after a courier account was removed.
func (h UpdateOrderStatusCommandHandler) syncCourierBookkeeping(
	ctx context.Context,
	userRepo ports.UserRepository,
	updatedOrder *order.Order,
) error {
	courierID := updatedOrder.Courier()
	if courierID == nil || !updatedOrder.Status().IsTerminal() {
		return nil
	}

	courier, err := userRepo.Get(ctx, *courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if updatedOrder.Status() == order.Delivered {
		err = courier.CompleteDelivery(updatedOrder.ID())
	} else {
		err = courier.RemoveActiveDelivery(updatedOrder.ID())
	}
	if err != nil {
		return err
	}

	return userRepo.Update(ctx, courier)
}
