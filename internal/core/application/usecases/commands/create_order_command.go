package commands

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to submit a new delivery order.
// Carries the validated contact info and delivery address value objects plus
// the free-text description of what to deliver.
//
// Example:
//
//	contact, _ := order.NewContactInfo("Jane Doe", "jane@example.com", "+212600000000")
//	address, _ := order.NewDeliveryAddress("12 Avenue Mohammed V, Rabat", point, "")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), nil, contact, address, "two pizzas")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID *kernel.UUID
	contact    order.ContactInfo
	address    order.DeliveryAddress
	content    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to submit a new delivery order.
// The customer ID is optional: guest orders carry nil. Returns an error if
// any identifier or value object fails validation or the content is empty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID *kernel.UUID,
	contact order.ContactInfo,
	address order.DeliveryAddress,
	content string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setContact(contact),
		orderCommand.setAddress(address),
		orderCommand.setContent(content),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the submitting customer's identity, or nil for guest orders.
func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// Contact returns the contact info to attach to the order.
func (c CreateOrderCommand) Contact() order.ContactInfo {
	return c.contact
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() order.DeliveryAddress {
	return c.address
}

// Content returns the free-text description of the items to deliver.
func (c CreateOrderCommand) Content() string {
	return c.content
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setContact(contact order.ContactInfo) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	c.contact = contact
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setContent(content string) error {
	if content == "" {
		return errs.NewValueIsRequiredError("orderContent")
	}

	c.content = content
	return nil
}
