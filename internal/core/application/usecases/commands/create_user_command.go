package commands

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand represents a request to register a new principal:
// an administrator, a customer, or a courier.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string
	email  string
	role   kernel.Role

	guard guard.ConstructorGuard
}

// NewCreateUserCommand creates a command to register a new user.
// Couriers start available with empty delivery bookkeeping.
func NewCreateUserCommand(userID kernel.UUID, name, email string, role kernel.Role) (CreateUserCommand, error) {
	userCommand := CreateUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		userCommand.setUserID(userID),
		userCommand.setName(name),
		userCommand.setEmail(email),
		userCommand.setRole(role),
	); err != nil {
		return CreateUserCommand{}, err
	}

	return userCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

// UserID returns the identifier for the new user.
func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Name returns the user's display name.
func (c CreateUserCommand) Name() string {
	return c.name
}

// Email returns the user's email address.
func (c CreateUserCommand) Email() string {
	return c.email
}

// Role returns the requested role.
func (c CreateUserCommand) Role() kernel.Role {
	return c.role
}

func (c *CreateUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateUserCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateUserCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.email = email
	return nil
}

func (c *CreateUserCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
