package queries

import (
	"context"
	"math"

	"gorm.io/gorm"
)

// GetCourierRatingSummaryQueryHandler computes a courier's rating statistics
// with a single grouped SQL query.
type GetCourierRatingSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierRatingSummaryQueryHandler creates a handler for rating summary queries.
func NewGetCourierRatingSummaryQueryHandler(db *gorm.DB) GetCourierRatingSummaryQueryHandler {
	return GetCourierRatingSummaryQueryHandler{db: db}
}

// Handle executes the query. A courier with no ratings yields a zero average,
// zero count, and an all-zero histogram rather than an error.
func (h GetCourierRatingSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetCourierRatingSummaryQuery,
) (GetCourierRatingSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierRatingSummaryQueryResponse{}, err
	}

	response := GetCourierRatingSummaryQueryResponse{
		CourierID: query.CourierID(),
		Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			rating,
			COUNT(*)
		FROM delivery_ratings
		WHERE courier_id = ?
		GROUP BY rating
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return GetCourierRatingSummaryQueryResponse{}, err
	}
	defer rows.Close()

	sum := 0
	for rows.Next() {
		var value, count int
		if err = rows.Scan(&value, &count); err != nil {
			return GetCourierRatingSummaryQueryResponse{}, err
		}

		response.Histogram[value] = count
		response.Count += count
		sum += value * count
	}

	if err = rows.Err(); err != nil {
		return GetCourierRatingSummaryQueryResponse{}, err
	}

	if response.Count > 0 {
		response.Average = math.Round(float64(sum)/float64(response.Count)*10) / 10
	}

	return response, nil
}
