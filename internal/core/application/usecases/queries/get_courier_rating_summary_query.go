package queries

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/guard"
)

var ErrGetCourierRatingSummaryQueryIsNotConstructed = errors.New(
	"GetCourierRatingSummaryQuery must be created via NewGetCourierRatingSummaryQuery constructor",
)

// GetCourierRatingSummaryQuery retrieves the aggregated rating statistics for
// one courier: average, total count, and a per-star histogram.
type GetCourierRatingSummaryQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierRatingSummaryQuery creates a query for a courier's rating summary.
func NewGetCourierRatingSummaryQuery(courierID kernel.UUID) (GetCourierRatingSummaryQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierRatingSummaryQuery{}, err
	}
	return GetCourierRatingSummaryQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierRatingSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierRatingSummaryQueryIsNotConstructed)
}

// CourierID returns the courier whose summary is requested.
func (q GetCourierRatingSummaryQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierRatingSummaryQueryResponse is the aggregated rating read model.
// Average is rounded to one decimal place and zero when the courier has no
// ratings yet. Histogram maps each star value in [1,5] to its count, with
// zeroes for absent values.
type GetCourierRatingSummaryQueryResponse struct {
	CourierID kernel.UUID
	Average   float64
	Count     int
	Histogram map[int]int
}
