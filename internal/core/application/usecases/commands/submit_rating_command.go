package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/rating"
	"nlivrilik/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand represents a customer's rating of a delivered order.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	ratingID   kernel.UUID
	orderID    kernel.UUID
	customerID *kernel.UUID
	value      int
	comment    string

	guard guard.ConstructorGuard
}

// NewSubmitRatingCommand creates a command to rate a delivered order.
// The customer ID is optional for guest orders. The star value must lie in
// [rating.MinRating, rating.MaxRating] and the comment within
// rating.MaxCommentLength characters; order-dependent preconditions are
// checked by the aggregate in the handler.
func NewSubmitRatingCommand(
	ratingID, orderID kernel.UUID,
	customerID *kernel.UUID,
	value int,
	comment string,
) (SubmitRatingCommand, error) {
	ratingCommand := SubmitRatingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ratingCommand.setRatingID(ratingID),
		ratingCommand.setOrderID(orderID),
		ratingCommand.setCustomerID(customerID),
		ratingCommand.setValue(value),
		ratingCommand.setComment(comment),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	return ratingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

// RatingID returns the identifier for the new rating.
func (c SubmitRatingCommand) RatingID() kernel.UUID {
	return c.ratingID
}

// OrderID returns the identifier of the rated order.
func (c SubmitRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the submitting customer's identity, or nil for guest orders.
func (c SubmitRatingCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// Value returns the star rating.
func (c SubmitRatingCommand) Value() int {
	return c.value
}

// Comment returns the optional free-text comment.
func (c SubmitRatingCommand) Comment() string {
	return c.comment
}

func (c *SubmitRatingCommand) setRatingID(ratingID kernel.UUID) error {
	if err := ratingID.Validate(); err != nil {
		return err
	}

	c.ratingID = ratingID
	return nil
}

func (c *SubmitRatingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitRatingCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *SubmitRatingCommand) setValue(value int) error {
	if value < rating.MinRating || value > rating.MaxRating {
		return fmt.Errorf("%w: got %d", rating.ErrInvalidRating, value)
	}

	c.value = value
	return nil
}

func (c *SubmitRatingCommand) setComment(comment string) error {
	if commentLength := utf8.RuneCountInString(comment); commentLength > rating.MaxCommentLength {
		return fmt.Errorf("%w: %d characters, maximum is %d",
			rating.ErrCommentTooLong, commentLength, rating.MaxCommentLength)
	}

	c.comment = comment
	return nil
}
