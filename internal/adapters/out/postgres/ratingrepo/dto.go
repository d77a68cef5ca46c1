// Package ratingrepo provides data transfer objects and mapping functions for
// delivery rating persistence. The unique index on order_id is the system's
// enforcement point for the one-rating-per-order rule.
package ratingrepo

import (
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// RatingDTO represents the database structure for persisting delivery ratings.
type RatingDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CourierID  uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID *uuid.UUID `gorm:"type:uuid"`

	Rating  int
	Comment string `gorm:"type:varchar(500)"`

	CustomerName  string
	CustomerEmail string
	DeliveredAt   time.Time
	Total         int64

	CreatedAt time.Time
}

// TableName specifies the database table name for rating entities.
func (RatingDTO) TableName() string {
	return "delivery_ratings"
}

// fromDomain converts a rating domain aggregate to its database representation.
func fromDomain(aggregate *rating.DeliveryRating) RatingDTO {
	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	info := aggregate.OrderInfo()

	return RatingDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		CourierID:  aggregate.CourierID().Bytes(),
		CustomerID: customerID,

		Rating:  aggregate.Rating(),
		Comment: aggregate.Comment(),

		CustomerName:  info.CustomerName,
		CustomerEmail: info.CustomerEmail,
		DeliveredAt:   info.DeliveredAt,
		Total:         int64(info.Total),

		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a rating domain aggregate.
func toDomain(dto RatingDTO) (*rating.DeliveryRating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
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

	return rating.RestoreDeliveryRating(
		id,
		orderID,
		courierID,
		customerID,
		dto.Rating,
		dto.Comment,
		rating.OrderInfo{
			CustomerName:  dto.CustomerName,
			CustomerEmail: dto.CustomerEmail,
			DeliveredAt:   dto.DeliveredAt,
			Total:         order.Cents(dto.Total),
		},
		dto.CreatedAt,
	)
}
