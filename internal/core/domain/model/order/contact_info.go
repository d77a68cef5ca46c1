package order

import (
	"errors"
	"net/mail"

	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

// ErrContactInfoIsNotConstructed is returned when using an improperly
// initialized ContactInfo value.
var ErrContactInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"contact info must be created via NewContactInfo constructor")

// ContactInfo holds the customer contact details attached to an order.
// It is an immutable value object: contact details cannot change after
// order creation, so no mutators exist.
type ContactInfo struct { //nolint:recvcheck //using for validation
	fullName string
	email    string
	phone    string
	guard    guard.ConstructorGuard
}

// NewContactInfo creates a validated ContactInfo.
// Full name and phone must be non-empty; email must be a parseable address.
func NewContactInfo(fullName, email, phone string) (ContactInfo, error) {
	contact := ContactInfo{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		contact.setFullName(fullName),
		contact.setEmail(email),
		contact.setPhone(phone),
	); err != nil {
		return ContactInfo{}, err
	}

	return contact, nil
}

// Validate ensures the ContactInfo was created through NewContactInfo.
func (c ContactInfo) Validate() error {
	return c.guard.Validate(ErrContactInfoIsNotConstructed)
}

// FullName returns the customer's full name.
func (c ContactInfo) FullName() string {
	return c.fullName
}

// Email returns the customer's email address.
func (c ContactInfo) Email() string {
	return c.email
}

// Phone returns the customer's phone number.
func (c ContactInfo) Phone() string {
	return c.phone
}

func (c *ContactInfo) setFullName(fullName string) error {
	if fullName == "" {
		return errs.NewValueIsRequiredError("fullName")
	}
	c.fullName = fullName
	return nil
}

func (c *ContactInfo) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	c.email = email
	return nil
}

func (c *ContactInfo) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}
