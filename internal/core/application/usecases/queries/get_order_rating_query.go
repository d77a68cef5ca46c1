package queries

import (
	"errors"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/guard"
)

var ErrGetOrderRatingQueryIsNotConstructed = errors.New(
	"GetOrderRatingQuery must be created via NewGetOrderRatingQuery constructor",
)

// GetOrderRatingQuery retrieves the rating submitted for one order, if any.
type GetOrderRatingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderRatingQuery creates a query for an order's rating.
func NewGetOrderRatingQuery(orderID kernel.UUID) (GetOrderRatingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderRatingQuery{}, err
	}
	return GetOrderRatingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderRatingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderRatingQueryIsNotConstructed)
}

// OrderID returns the rated order's identifier.
func (q GetOrderRatingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderRatingQueryResponse is the rating read model for one order.
type GetOrderRatingQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	CourierID kernel.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}
