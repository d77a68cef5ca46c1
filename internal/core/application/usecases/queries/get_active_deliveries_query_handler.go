package queries

import (
	"context"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves a courier's Ready and InTransit
// orders straight from the database, oldest claim first.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery queries.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query for the courier's active deliveries.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_name,
			customer_phone,
			address_formatted,
			content,
			estimated_delivery_time
		FROM orders
		WHERE courier_id = ? AND status IN (?, ?)
		ORDER BY updated_at ASC
	`, query.CourierID().Bytes(), order.Ready.String(), order.InTransit.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetActiveDeliveriesQueryResponse
		var id uuid.UUID
		var status string
		var estimatedDeliveryTime *time.Time

		err = rows.Scan(
			&id,
			&status,
			&response.CustomerName,
			&response.CustomerPhone,
			&response.AddressFormatted,
			&response.Content,
			&estimatedDeliveryTime,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = orderID

		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		response.Status = orderStatus
		response.EstimatedDeliveryTime = estimatedDeliveryTime

		deliveries = append(deliveries, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
