package rating

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/guard"
)

const (
	// MinRating is the lowest accepted star rating.
	MinRating = 1
	// MaxRating is the highest accepted star rating.
	MaxRating = 5
	// MaxCommentLength is the longest accepted rating comment.
	MaxCommentLength = 500
)

// Domain errors for rating operations.
var (
	// ErrRatingIsNotConstructed is returned when using an improperly initialized DeliveryRating.
	ErrRatingIsNotConstructed = errors.New("DeliveryRating must be created via NewDeliveryRating constructor")

	// ErrOrderNotDelivered is returned when rating an order that has not been delivered.
	ErrOrderNotDelivered = errors.New("only delivered orders can be rated")

	// ErrNoCourierAssigned is returned when the rated order carries no courier.
	ErrNoCourierAssigned = errors.New("order has no assigned courier")

	// ErrInvalidRating is returned when the star rating lies outside [1,5].
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

	// ErrCommentTooLong is returned when the comment exceeds MaxCommentLength.
	ErrCommentTooLong = errors.New("comment exceeds the maximum length")

	// ErrCustomerMismatch is returned when a customer rates an order that
	// belongs to a different customer.
	ErrCustomerMismatch = errors.New("order belongs to another customer")

	// ErrAlreadyRated is returned when the order already has a rating.
	// Raised by the persistence layer, which owns the uniqueness constraint.
	ErrAlreadyRated = errors.New("order has already been rated")
)

// OrderInfo is a denormalized snapshot of order metadata captured when the
// rating is created. It keeps historical rating displays accurate regardless
// of later order mutation.
type OrderInfo struct {
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	DeliveredAt   time.Time   `json:"deliveredAt"`
	Total         order.Cents `json:"total"`
}

// DeliveryRating is an append-only aggregate recording a customer's rating of
// a delivered order. At most one rating exists per order; the record is
// created once and never updated or deleted in normal flow. Uniqueness across
// concurrent submissions is enforced by the persistence layer's unique
// constraint on the order reference.
type DeliveryRating struct {
	id         kernel.UUID
	orderID    kernel.UUID
	courierID  kernel.UUID
	customerID *kernel.UUID
	rating     int
	comment    string
	orderInfo  OrderInfo
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryRating creates a rating for a delivered order.
//
// Preconditions (first failure wins):
//   - the order status is Delivered, else ErrOrderNotDelivered
//   - the order has an assigned courier, else ErrNoCourierAssigned
//   - when the order carries a customer identity, customerID must match,
//     else ErrCustomerMismatch
//   - value lies in [MinRating, MaxRating], else ErrInvalidRating
//   - comment is at most MaxCommentLength characters, else ErrCommentTooLong
//
// The order snapshot (customer name/email, delivery date, total) is captured
// here and never refreshed.
func NewDeliveryRating(
	id kernel.UUID,
	ratedOrder *order.Order,
	customerID *kernel.UUID,
	value int,
	comment string,
	now time.Time,
) (*DeliveryRating, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ratedOrder.Validate(); err != nil {
		return nil, err
	}

	if ratedOrder.Status() != order.Delivered {
		return nil, fmt.Errorf("%w: order is %s", ErrOrderNotDelivered, ratedOrder.Status())
	}
	courierID := ratedOrder.Courier()
	if courierID == nil {
		return nil, ErrNoCourierAssigned
	}
	if owner := ratedOrder.CustomerID(); owner != nil {
		if customerID == nil || !owner.IsEqual(*customerID) {
			return nil, ErrCustomerMismatch
		}
	}
	if value < MinRating || value > MaxRating {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, value)
	}
	if commentLength := utf8.RuneCountInString(comment); commentLength > MaxCommentLength {
		return nil, fmt.Errorf("%w: %d characters, maximum is %d",
			ErrCommentTooLong, commentLength, MaxCommentLength)
	}

	deliveredAt := now
	if actual := ratedOrder.ActualDeliveryTime(); actual != nil {
		deliveredAt = *actual
	}

	return &DeliveryRating{
		id:         id,
		orderID:    ratedOrder.ID(),
		courierID:  *courierID,
		customerID: customerID,
		rating:     value,
		comment:    comment,
		orderInfo: OrderInfo{
			CustomerName:  ratedOrder.Contact().FullName(),
			CustomerEmail: ratedOrder.Contact().Email(),
			DeliveredAt:   deliveredAt,
			Total:         ratedOrder.Financials().Total(),
		},
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryRating reconstructs a rating from persistent storage.
func RestoreDeliveryRating(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	customerID *kernel.UUID,
	value int,
	comment string,
	orderInfo OrderInfo,
	createdAt time.Time,
) (*DeliveryRating, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &DeliveryRating{
		id:         id,
		orderID:    orderID,
		courierID:  courierID,
		customerID: customerID,
		rating:     value,
		comment:    comment,
		orderInfo:  orderInfo,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the rating was properly constructed.
func (r *DeliveryRating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// ID returns the rating's unique identifier.
func (r *DeliveryRating) ID() kernel.UUID {
	return r.id
}

// OrderID returns the rated order's identifier.
func (r *DeliveryRating) OrderID() kernel.UUID {
	return r.orderID
}

// CourierID returns the rated courier's identifier.
func (r *DeliveryRating) CourierID() kernel.UUID {
	return r.courierID
}

// CustomerID returns the submitting customer's identity, or nil when the
// rating was submitted for a guest order.
func (r *DeliveryRating) CustomerID() *kernel.UUID {
	return r.customerID
}

// Rating returns the star value in [1,5].
func (r *DeliveryRating) Rating() int {
	return r.rating
}

// Comment returns the optional free-text comment.
func (r *DeliveryRating) Comment() string {
	return r.comment
}

// OrderInfo returns the denormalized order snapshot.
func (r *DeliveryRating) OrderInfo() OrderInfo {
	return r.orderInfo
}

// CreatedAt returns the submission timestamp.
func (r *DeliveryRating) CreatedAt() time.Time {
	return r.createdAt
}
