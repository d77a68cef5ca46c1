package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nlivrilik/internal/core/ports"
)

// NotifyStaleOrdersCommandHandler reminds administrators about orders that
// no courier has claimed within the staleness threshold. It reads inside a
// transaction for a consistent snapshot but writes nothing; the notification
// is sent after the transaction ends so a slow mail relay cannot hold locks.
type NotifyStaleOrdersCommandHandler struct {
	uowFactory      OrderUoWFactory
	notifier        ports.NotificationClient
	adminRecipients []string
}

// NewNotifyStaleOrdersCommandHandler creates a handler for stale order reminders.
func NewNotifyStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationClient,
	adminRecipients []string,
) NotifyStaleOrdersCommandHandler {
	return NotifyStaleOrdersCommandHandler{
		uowFactory:      uowFactory,
		notifier:        notifier,
		adminRecipients: adminRecipients,
	}
}

// Handle processes the reminder command. It is a no-op when no orders are
// stale or no admin recipients are configured.
func (h NotifyStaleOrdersCommandHandler) Handle(ctx context.Context, cmd NotifyStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if len(h.adminRecipients) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().Add(-cmd.Threshold())
	staleOrders, err := uow.OrderRepository().GetAllUnassignedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(staleOrders) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%d order(s) have been waiting for a courier for more than %s:\n\n",
		len(staleOrders), cmd.Threshold())
	for _, staleOrder := range staleOrders {
		fmt.Fprintf(&body, "- %s (%s, created %s)\n",
			staleOrder.ID(), staleOrder.Status(), staleOrder.CreatedAt().Format(time.RFC3339))
	}

	subject := fmt.Sprintf("Unassigned orders reminder: %d waiting", len(staleOrders))
	return h.notifier.Send(ctx, h.adminRecipients, subject, body.String())
}
