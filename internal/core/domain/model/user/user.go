package user

import (
	"errors"
	"fmt"
	"net/mail"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via one of its constructors")

	// ErrNotACourier is returned when a courier-only operation is invoked on
	// a user whose role is not courier.
	ErrNotACourier = errors.New("user is not a courier")
)

// User is the aggregate root for every principal known to the system.
//
// It is a tagged union: the Role field discriminates the variant, and exactly
// the profile matching the role is present. An admin and a customer carry no
// extra state today; a courier carries a CourierProfile with availability and
// delivery bookkeeping. This replaces the role-conditional optional
// sub-documents of the original data model with a shape the type system can
// check: courier operations fail with ErrNotACourier instead of silently
// reading absent fields.
type User struct {
	id    kernel.UUID
	name  string
	email string
	role  kernel.Role

	// courier is non-nil if and only if role == kernel.RoleCourier.
	courier *CourierProfile

	guard guard.ConstructorGuard
}

// NewAdmin creates a back-office administrator.
func NewAdmin(id kernel.UUID, name, email string) (*User, error) {
	return newUser(id, name, email, kernel.RoleAdmin, nil)
}

// NewCustomer creates an end customer.
func NewCustomer(id kernel.UUID, name, email string) (*User, error) {
	return newUser(id, name, email, kernel.RoleCustomer, nil)
}

// NewCourier creates a delivery person with a fresh, available courier profile
// and no active or completed deliveries.
func NewCourier(id kernel.UUID, name, email string) (*User, error) {
	return newUser(id, name, email, kernel.RoleCourier, NewCourierProfile())
}

// NewUser creates a user of the given role with the variant profile the role
// requires. It is a convenience for callers that receive the role as data.
func NewUser(id kernel.UUID, name, email string, role kernel.Role) (*User, error) {
	switch role { //nolint:exhaustive // invalid roles rejected below
	case kernel.RoleAdmin:
		return NewAdmin(id, name, email)
	case kernel.RoleCustomer:
		return NewCustomer(id, name, email)
	case kernel.RoleCourier:
		return NewCourier(id, name, email)
	}
	return nil, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%d is not a valid role", role))
}

// RestoreUser reconstructs a User aggregate from persistent storage.
// The courier profile must be present exactly when the role is courier.
func RestoreUser(
	id kernel.UUID,
	name, email string,
	role kernel.Role,
	courier *CourierProfile,
) (*User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if (role == kernel.RoleCourier) != (courier != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"courierProfile", fmt.Errorf("courier profile presence does not match role %s", role))
	}
	return newUser(id, name, email, role, courier)
}

func newUser(id kernel.UUID, name, email string, role kernel.Role, courier *CourierProfile) (*User, error) {
	u := &User{
		role:    role,
		courier: courier,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's role discriminator.
func (u *User) Role() kernel.Role {
	return u.role
}

// CourierProfile returns the courier variant state.
// Returns ErrNotACourier when the user's role is not courier.
func (u *User) CourierProfile() (*CourierProfile, error) {
	if u.role != kernel.RoleCourier || u.courier == nil {
		return nil, ErrNotACourier
	}
	return u.courier, nil
}

// SetAvailability toggles whether the courier accepts new deliveries.
func (u *User) SetAvailability(available bool) error {
	profile, err := u.CourierProfile()
	if err != nil {
		return err
	}
	profile.isAvailable = available
	return nil
}

// AddActiveDelivery records an order claim on the courier's active set.
// The set has set semantics: adding an order already present is a no-op.
func (u *User) AddActiveDelivery(orderID kernel.UUID) error {
	profile, err := u.CourierProfile()
	if err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	for _, id := range profile.activeDeliveries {
		if id.IsEqual(orderID) {
			return nil
		}
	}
	profile.activeDeliveries = append(profile.activeDeliveries, orderID)
	return nil
}

// RemoveActiveDelivery drops an order from the courier's active set, if present.
// Used when an assigned order is cancelled.
func (u *User) RemoveActiveDelivery(orderID kernel.UUID) error {
	profile, err := u.CourierProfile()
	if err != nil {
		return err
	}
	for i, id := range profile.activeDeliveries {
		if id.IsEqual(orderID) {
			profile.activeDeliveries = append(
				profile.activeDeliveries[:i], profile.activeDeliveries[i+1:]...)
			return nil
		}
	}
	return nil
}

// CompleteDelivery drops an order from the active set and credits the
// courier's completed-deliveries counter. Called on delivery completion.
func (u *User) CompleteDelivery(orderID kernel.UUID) error {
	if err := u.RemoveActiveDelivery(orderID); err != nil {
		return err
	}
	profile, err := u.CourierProfile()
	if err != nil {
		return err
	}
	profile.completedDeliveries++
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}
