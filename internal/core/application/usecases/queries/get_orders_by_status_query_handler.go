package queries

import (
	"context"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler retrieves order read models filtered by status.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query and returns matching orders, newest first.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersByStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_name,
			address_formatted,
			content,
			courier_id,
			estimated_delivery_time,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at DESC
	`, query.Status().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetOrdersByStatusQueryResponse
		var id uuid.UUID
		var status string
		var courierID *uuid.UUID
		var estimatedDeliveryTime *time.Time

		err = rows.Scan(
			&id,
			&status,
			&response.CustomerName,
			&response.AddressFormatted,
			&response.Content,
			&courierID,
			&estimatedDeliveryTime,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		response.Status = orderStatus

		if courierID != nil {
			assignedCourier, courierErr := kernel.UUIDFromBytes(courierID[:])
			if courierErr != nil {
				return nil, courierErr
			}
			response.CourierID = &assignedCourier
		}
		response.EstimatedDeliveryTime = estimatedDeliveryTime

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
