package queries

import (
	"errors"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves the full read model of a single order,
// including its status history and financial breakdown.
type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for one order.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}
	return GetOrderByIDQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderFinancialsResponse is the financial section of the order read model.
// Present only once the delivery has been reconciled.
type OrderFinancialsResponse struct {
	Subtotal      order.Cents
	DeliveryFee   order.Cents
	Total         order.Cents
	PaymentMethod string
	IsPaid        bool
}

// GetOrderByIDQueryResponse is the full order read model.
type GetOrderByIDQueryResponse struct {
	ID                    kernel.UUID
	Status                order.Status
	CustomerID            *kernel.UUID
	CustomerName          string
	CustomerEmail         string
	CustomerPhone         string
	AddressFormatted      string
	AddressAdditionalInfo string
	Longitude             float64
	Latitude              float64
	Content               string
	History               []order.HistoryEntry
	Financials            *OrderFinancialsResponse
	CourierID             *kernel.UUID
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	DeliveryNotes         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
