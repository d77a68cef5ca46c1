// Package events defines the domain events emitted by the order lifecycle.
// Events are plain data carried from command handlers to the notification
// dispatcher after the transaction that produced them commits.
package events

import (
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
)

// OrderStatusChanged is emitted after an order enters a new status.
// A Previous of order.Unknown marks the creation event (the order just
// entered Pending and had no prior status).
//
// The event carries the customer contact snapshot so consumers can address
// notifications without re-reading the order.
type OrderStatusChanged struct {
	OrderID       kernel.UUID
	Previous      order.Status
	New           order.Status
	CustomerName  string
	CustomerEmail string
	CourierID     *kernel.UUID
	Note          string
	OccurredAt    time.Time
}

// NewOrderStatusChanged builds the event from the order's post-transition state.
func NewOrderStatusChanged(o *order.Order, previous order.Status, note string, occurredAt time.Time) OrderStatusChanged {
	return OrderStatusChanged{
		OrderID:       o.ID(),
		Previous:      previous,
		New:           o.Status(),
		CustomerName:  o.Contact().FullName(),
		CustomerEmail: o.Contact().Email(),
		CourierID:     o.Courier(),
		Note:          note,
		OccurredAt:    occurredAt,
	}
}

// IsCreation reports whether the event marks order creation rather than a
// transition between two statuses.
func (e OrderStatusChanged) IsCreation() bool {
	return e.Previous == order.Unknown
}
