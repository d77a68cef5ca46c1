package commands

import (
	"context"
	"errors"
	"time"

	"nlivrilik/internal/core/domain/events"
	"nlivrilik/internal/core/ports"
	"nlivrilik/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler finishes a delivery: records the financial
// reconciliation on the order, moves it to Delivered, and credits the
// courier's completed-deliveries counter in the same transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUserUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUserUoWFactory,
	publisher ports.EventPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delivery completion command.
// Returns errors wrapping order.ErrNotAssignedToCourier when another courier
// attempts the handoff and order.ErrInvalidState when the order is not in
// transit.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	deliveredOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	previous := deliveredOrder.Status()
	if err = deliveredOrder.CompleteDelivery(cmd.CourierID(), cmd.Financials(), cmd.Notes(), now); err != nil {
		return err
	}

	courier, err := userRepo.Get(ctx, cmd.CourierID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// the order can still complete after the courier account was removed
	case err != nil:
		return err
	default:
		if err = courier.CompleteDelivery(deliveredOrder.ID()); err != nil {
			return err
		}
		if err = userRepo.Update(ctx, courier); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, deliveredOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderStatusChanged(
		events.NewOrderStatusChanged(deliveredOrder, previous, "Order delivered", now))

	return nil
}
