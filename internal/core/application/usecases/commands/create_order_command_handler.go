package commands

import (
	"context"
	"time"

	"nlivrilik/internal/core/domain/events"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order submission.
// Creates new orders in Pending status and announces them to the notification
// pipeline after the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order submission.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for post-commit notifications.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order submission command.
// Creates the order in Pending status with its seeded history entry and
// persists it. The creation event is published only after a successful commit
// so consumers never observe orders that were rolled back.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.Contact(), cmd.Address(), cmd.Content(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderStatusChanged(
		events.NewOrderStatusChanged(newOrder, order.Unknown, "Order received", now))

	return nil
}
