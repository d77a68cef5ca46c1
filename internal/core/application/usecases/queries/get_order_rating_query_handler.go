package queries

import (
	"context"
	"database/sql"
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderRatingQueryHandler retrieves the rating for one order.
type GetOrderRatingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderRatingQueryHandler creates a handler for order rating queries.
func NewGetOrderRatingQueryHandler(db *gorm.DB) GetOrderRatingQueryHandler {
	return GetOrderRatingQueryHandler{db: db}
}

// Handle executes the query. Orders without a rating yield a not-found error.
func (h GetOrderRatingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderRatingQuery,
) (GetOrderRatingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderRatingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			courier_id,
			rating,
			comment,
			created_at
		FROM delivery_ratings
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	var response GetOrderRatingQueryResponse
	var id, orderID, courierID uuid.UUID

	err := row.Scan(
		&id,
		&orderID,
		&courierID,
		&response.Rating,
		&response.Comment,
		&response.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderRatingQueryResponse{}, errs.NewObjectNotFoundError("rating", query.OrderID().String())
		}
		return GetOrderRatingQueryResponse{}, err
	}

	ratingID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderRatingQueryResponse{}, err
	}
	response.ID = ratingID

	ratedOrder, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetOrderRatingQueryResponse{}, err
	}
	response.OrderID = ratedOrder

	ratedCourier, err := kernel.UUIDFromBytes(courierID[:])
	if err != nil {
		return GetOrderRatingQueryResponse{}, err
	}
	response.CourierID = ratedCourier

	return response, nil
}
