package commands

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a courier finishing a delivery: the
// terminal handoff that records the reconciled financials and optional notes.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	courierID  kernel.UUID
	financials order.FinancialDetails
	notes      string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
// The financial amounts are validated here through the FinancialDetails
// constructor: negative amounts or a supplied total that does not equal
// subtotal plus delivery fee fail with order.ErrInvalidAmount.
func NewCompleteDeliveryCommand(
	orderID, courierID kernel.UUID,
	subtotal, deliveryFee order.Cents,
	total *order.Cents,
	paymentMethod string,
	isPaid bool,
	notes string,
) (CompleteDeliveryCommand, error) {
	completeCommand := CompleteDeliveryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	financials, err := order.NewFinancialDetails(subtotal, deliveryFee, total, paymentMethod, isPaid)
	if err != nil {
		return CompleteDeliveryCommand{}, err
	}
	completeCommand.financials = financials

	if err := errors.Join(
		completeCommand.setOrderID(orderID),
		completeCommand.setCourierID(courierID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being completed.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the delivering courier.
func (c CompleteDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Financials returns the reconciled financial details to record.
func (c CompleteDeliveryCommand) Financials() order.FinancialDetails {
	return c.financials
}

// Notes returns the courier's optional delivery notes.
func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
