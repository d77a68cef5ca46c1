package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler retrieves one order's read model directly from the
// database, including the JSONB status history.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single order queries.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query. Unknown order IDs yield a not-found error.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_id,
			customer_name,
			customer_email,
			customer_phone,
			address_formatted,
			address_additional_info,
			longitude,
			latitude,
			content,
			history,
			financials_recorded,
			subtotal,
			delivery_fee,
			total,
			payment_method,
			is_paid,
			courier_id,
			estimated_delivery_time,
			actual_delivery_time,
			delivery_notes,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var response GetOrderByIDQueryResponse
	var id uuid.UUID
	var status string
	var customerID, courierID *uuid.UUID
	var history []byte
	var financialsRecorded, isPaid bool
	var subtotal, deliveryFee, total int64
	var paymentMethod string
	var estimatedDeliveryTime, actualDeliveryTime *time.Time

	err := row.Scan(
		&id,
		&status,
		&customerID,
		&response.CustomerName,
		&response.CustomerEmail,
		&response.CustomerPhone,
		&response.AddressFormatted,
		&response.AddressAdditionalInfo,
		&response.Longitude,
		&response.Latitude,
		&response.Content,
		&history,
		&financialsRecorded,
		&subtotal,
		&deliveryFee,
		&total,
		&paymentMethod,
		&isPaid,
		&courierID,
		&estimatedDeliveryTime,
		&actualDeliveryTime,
		&response.DeliveryNotes,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderByIDQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.ID = orderID

	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.Status = orderStatus

	if customerID != nil {
		customer, customerErr := kernel.UUIDFromBytes((*customerID)[:])
		if customerErr != nil {
			return GetOrderByIDQueryResponse{}, customerErr
		}
		response.CustomerID = &customer
	}
	if courierID != nil {
		courier, courierErr := kernel.UUIDFromBytes((*courierID)[:])
		if courierErr != nil {
			return GetOrderByIDQueryResponse{}, courierErr
		}
		response.CourierID = &courier
	}

	if len(history) > 0 {
		if err = json.Unmarshal(history, &response.History); err != nil {
			return GetOrderByIDQueryResponse{}, err
		}
	}

	if financialsRecorded {
		response.Financials = &OrderFinancialsResponse{
			Subtotal:      order.Cents(subtotal),
			DeliveryFee:   order.Cents(deliveryFee),
			Total:         order.Cents(total),
			PaymentMethod: paymentMethod,
			IsPaid:        isPaid,
		}
	}

	response.EstimatedDeliveryTime = estimatedDeliveryTime
	response.ActualDeliveryTime = actualDeliveryTime

	return response, nil
}
