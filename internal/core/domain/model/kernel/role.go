package kernel

import (
	"fmt"

	"nlivrilik/internal/pkg/errs"
)

// Role identifies the kind of principal acting on the system.
// It discriminates the User variants and gates status transitions.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin is a back-office administrator with full control over
	// users and orders.
	RoleAdmin

	// RoleCustomer is an end customer who submits delivery orders.
	RoleCustomer

	// RoleCourier is a delivery person who claims and fulfills orders.
	RoleCourier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "UNKNOWN",
		RoleAdmin:    "ADMIN",
		RoleCustomer: "USER",
		RoleCourier:  "DELIVERY_MAN",
	}
}

// RoleFromString parses the wire representation of a role.
// Accepted values are "ADMIN", "USER" and "DELIVERY_MAN".
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined values.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleCustomer, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Actor is the authenticated principal invoking an operation, as supplied by
// the identity collaborator. The core treats it as trusted input and applies
// only role-based authorization on top of it.
type Actor struct {
	ID   UUID
	Role Role
}

// NewActor creates an Actor after validating both components.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// Validate checks both actor components.
func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}
