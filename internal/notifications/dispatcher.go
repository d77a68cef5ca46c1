// Package notifications delivers order lifecycle updates to the interested
// audiences. Command handlers publish events after their transaction commits;
// a background worker turns each event into per-audience messages and hands
// them to the notification client.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"nlivrilik/internal/core/domain/events"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/ports"
)

const (
	defaultQueueSize = 128
	sendTimeout      = 30 * time.Second
)

// Config carries the static audience lists. Customer recipients come from the
// event itself; admins and the courier dispatch desk are configured once.
type Config struct {
	AdminRecipients   []string
	CourierRecipients []string
}

// Dispatcher fans order status events out to customers, administrators and
// the courier dispatch desk. Publishing never blocks the caller: events are
// queued on a buffered channel and dropped with a warning when the queue is
// full, since a missed notification must not fail the business operation.
type Dispatcher struct {
	client ports.NotificationClient
	config Config
	logger *slog.Logger

	queue chan events.OrderStatusChanged
	stop  chan struct{}
	wg    sync.WaitGroup
}

// NewDispatcher creates a dispatcher delivering through the given client.
func NewDispatcher(client ports.NotificationClient, config Config, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		config: config,
		logger: logger,
		queue:  make(chan events.OrderStatusChanged, defaultQueueSize),
		stop:   make(chan struct{}),
	}
}

// Start launches the background delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop drains the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	close(d.stop)
	d.wg.Wait()
}

// PublishOrderStatusChanged enqueues the event for delivery. Never blocks;
// when the queue is full the event is dropped and logged.
func (d *Dispatcher) PublishOrderStatusChanged(event events.OrderStatusChanged) {
	select {
	case d.queue <- event:
	default:
		d.logger.Warn("notification queue full, dropping event",
			slog.String("order_id", event.OrderID.String()),
			slog.String("status", event.New.String()))
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.queue:
			d.dispatch(event)
		case <-d.stop:
			// Drain whatever was queued before shutdown
			for {
				select {
				case event := <-d.queue:
					d.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

// dispatch sends one message per audience. A failure for one audience does
// not prevent delivery to the others.
func (d *Dispatcher) dispatch(event events.OrderStatusChanged) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	for _, m := range buildMessages(event, d.config) {
		if err := d.client.Send(ctx, m.recipients, m.subject, m.body); err != nil {
			d.logger.Error("notification delivery failed",
				slog.String("order_id", event.OrderID.String()),
				slog.String("audience", m.audience),
				slog.Any("error", err))
		}
	}
}

type message struct {
	audience   string
	recipients []string
	subject    string
	body       string
}

// buildMessages composes the per-audience messages for an event. Customers
// and administrators hear about every change; the courier dispatch desk only
// about orders that have a courier attached.
func buildMessages(event events.OrderStatusChanged, config Config) []message {
	shortID := shortOrderID(event)
	messages := make([]message, 0, 3)

	if event.CustomerEmail != "" {
		messages = append(messages, message{
			audience:   "customer",
			recipients: []string{event.CustomerEmail},
			subject:    fmt.Sprintf("Your order %s: %s", shortID, customerHeadline(event)),
			body:       customerBody(event),
		})
	}

	if len(config.AdminRecipients) > 0 {
		messages = append(messages, message{
			audience:   "admin",
			recipients: config.AdminRecipients,
			subject:    fmt.Sprintf("Order %s is now %s", shortID, event.New),
			body:       adminBody(event),
		})
	}

	if len(config.CourierRecipients) > 0 && event.CourierID != nil && courierCares(event.New) {
		messages = append(messages, message{
			audience:   "courier",
			recipients: config.CourierRecipients,
			subject:    fmt.Sprintf("Delivery update for order %s: %s", shortID, event.New),
			body:       courierBody(event),
		})
	}

	return messages
}

// courierCares reports whether the status concerns the delivery side.
func courierCares(status order.Status) bool {
	switch status {
	case order.Ready, order.InTransit, order.Delivered, order.Cancelled:
		return true
	default:
		return false
	}
}

func shortOrderID(event events.OrderStatusChanged) string {
	id := event.OrderID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func customerHeadline(event events.OrderStatusChanged) string {
	if event.IsCreation() {
		return "received"
	}

	switch event.New {
	case order.Confirmed:
		return "confirmed"
	case order.Processing:
		return "being prepared"
	case order.Ready:
		return "ready for delivery"
	case order.InTransit:
		return "on the way"
	case order.Delivered:
		return "delivered"
	case order.Cancelled:
		return "cancelled"
	default:
		return event.New.String()
	}
}

func customerBody(event events.OrderStatusChanged) string {
	body := fmt.Sprintf("Hello %s,\n\nYour order is now %s.",
		event.CustomerName, customerHeadline(event))
	if event.Note != "" {
		body += "\n\n" + event.Note
	}
	return body
}

func adminBody(event events.OrderStatusChanged) string {
	body := fmt.Sprintf("Order %s moved from %s to %s at %s.",
		event.OrderID, event.Previous, event.New,
		event.OccurredAt.Format(time.RFC3339))
	if event.IsCreation() {
		body = fmt.Sprintf("Order %s was created at %s.",
			event.OrderID, event.OccurredAt.Format(time.RFC3339))
	}
	if event.CourierID != nil {
		body += fmt.Sprintf("\nCourier: %s.", event.CourierID)
	}
	if event.Note != "" {
		body += "\nNote: " + event.Note
	}
	return body
}

func courierBody(event events.OrderStatusChanged) string {
	return fmt.Sprintf("Order %s for %s is now %s.\nCourier: %s.",
		event.OrderID, event.CustomerName, event.New, event.CourierID)
}
