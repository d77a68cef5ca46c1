// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status history is stored as a JSONB document alongside the row; the
// status and courier columns are indexed for the claim and capacity queries.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	AddressFormatted      string
	Longitude             float64 `gorm:"index:idx_orders_point"`
	Latitude              float64 `gorm:"index:idx_orders_point"`
	AddressAdditionalInfo string

	Content string

	Status  string `gorm:"type:varchar(16);index"`
	History []byte `gorm:"type:jsonb"`

	// FinancialsRecorded distinguishes a genuinely reconciled zero-amount
	// order from one whose financials were never recorded.
	FinancialsRecorded bool
	Subtotal           int64
	DeliveryFee        int64
	Total              int64
	PaymentMethod      string
	IsPaid             bool

	CourierID             *uuid.UUID `gorm:"type:uuid;index"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	DeliveryNotes         string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	history, err := json.Marshal(aggregate.History())
	if err != nil {
		return OrderDTO{}, err
	}

	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	financials := aggregate.Financials()

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: customerID,

		CustomerName:  aggregate.Contact().FullName(),
		CustomerEmail: aggregate.Contact().Email(),
		CustomerPhone: aggregate.Contact().Phone(),

		AddressFormatted:      aggregate.Address().Formatted(),
		Longitude:             aggregate.Address().Point().Longitude(),
		Latitude:              aggregate.Address().Point().Latitude(),
		AddressAdditionalInfo: aggregate.Address().AdditionalInfo(),

		Content: aggregate.Content(),

		Status:  aggregate.Status().String(),
		History: history,

		FinancialsRecorded: financials.IsReconciled(),
		Subtotal:           int64(financials.Subtotal()),
		DeliveryFee:        int64(financials.DeliveryFee()),
		Total:              int64(financials.Total()),
		PaymentMethod:      financials.PaymentMethod(),
		IsPaid:             financials.IsPaid(),

		CourierID:             courierID,
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		DeliveryNotes:         aggregate.DeliveryNotes(),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	contact, err := order.NewContactInfo(dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Longitude, dto.Latitude)
	if err != nil {
		return nil, err
	}

	address, err := order.NewDeliveryAddress(dto.AddressFormatted, point, dto.AddressAdditionalInfo)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var history []order.HistoryEntry
	if len(dto.History) > 0 {
		if err = json.Unmarshal(dto.History, &history); err != nil {
			return nil, err
		}
	}

	var financials order.FinancialDetails
	if dto.FinancialsRecorded {
		financials = order.RestoreFinancialDetails(
			order.Cents(dto.Subtotal),
			order.Cents(dto.DeliveryFee),
			order.Cents(dto.Total),
			dto.PaymentMethod,
			dto.IsPaid,
		)
	}

	return order.RestoreOrder(
		id,
		customerID,
		contact,
		address,
		dto.Content,
		status,
		history,
		financials,
		courierID,
		dto.EstimatedDeliveryTime,
		dto.ActualDeliveryTime,
		dto.DeliveryNotes,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
