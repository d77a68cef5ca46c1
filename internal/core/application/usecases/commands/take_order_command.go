package commands

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/guard"
)

var ErrTakeOrderCommandIsNotConstructed = errors.New(
	"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
)

// TakeOrderCommand represents a courier's request to claim an open order.
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTakeOrderCommand creates a command for a courier to claim an order.
// Returns an error if either identifier fails validation.
func NewTakeOrderCommand(orderID, courierID kernel.UUID) (TakeOrderCommand, error) {
	takeCommand := TakeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		takeCommand.setOrderID(orderID),
		takeCommand.setCourierID(courierID),
	); err != nil {
		return TakeOrderCommand{}, err
	}

	return takeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to claim.
func (c TakeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the claiming courier.
func (c TakeOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *TakeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TakeOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
