package queries

import (
	"errors"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves a courier's in-flight deliveries: the
// orders assigned to them that are Ready or InTransit.
type GetActiveDeliveriesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for a courier's active deliveries.
func NewGetActiveDeliveriesQuery(courierID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}
	return GetActiveDeliveriesQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// CourierID returns the courier whose deliveries are requested.
func (q GetActiveDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetActiveDeliveriesQueryResponse is the delivery read model for couriers:
// what to pick up, where to bring it, and by when.
type GetActiveDeliveriesQueryResponse struct {
	OrderID               kernel.UUID
	Status                order.Status
	CustomerName          string
	CustomerPhone         string
	AddressFormatted      string
	Content               string
	EstimatedDeliveryTime *time.Time
}
