package ports

import (
	"nlivrilik/internal/core/domain/events"
)

// EventPublisher hands completed domain events to interested consumers.
// Publishing is fire-and-forget: it must never block or fail the command
// that produced the event.
type EventPublisher interface {
	PublishOrderStatusChanged(event events.OrderStatusChanged)
}
