package order

import (
	"errors"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

// ErrDeliveryAddressIsNotConstructed is returned when using an improperly
// initialized DeliveryAddress value.
var ErrDeliveryAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery address must be created via NewDeliveryAddress constructor")

// DeliveryAddress is the map-picked destination of an order: a formatted
// address string, the geocoordinate pair behind it, and optional free-text
// directions for the courier.
type DeliveryAddress struct { //nolint:recvcheck //using for validation
	formatted      string
	point          kernel.GeoPoint
	additionalInfo string
	guard          guard.ConstructorGuard
}

// NewDeliveryAddress creates a validated DeliveryAddress.
// The formatted address must be non-empty and the point must be a constructed
// GeoPoint. additionalInfo may be empty.
func NewDeliveryAddress(formatted string, point kernel.GeoPoint, additionalInfo string) (DeliveryAddress, error) {
	address := DeliveryAddress{
		additionalInfo: additionalInfo,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setFormatted(formatted),
		address.setPoint(point),
	); err != nil {
		return DeliveryAddress{}, err
	}

	return address, nil
}

// Validate ensures the DeliveryAddress was created through NewDeliveryAddress.
func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

// Formatted returns the human-readable address string.
func (a DeliveryAddress) Formatted() string {
	return a.formatted
}

// Point returns the delivery geocoordinates.
func (a DeliveryAddress) Point() kernel.GeoPoint {
	return a.point
}

// AdditionalInfo returns the optional free-text directions.
func (a DeliveryAddress) AdditionalInfo() string {
	return a.additionalInfo
}

func (a *DeliveryAddress) setFormatted(formatted string) error {
	if formatted == "" {
		return errs.NewValueIsRequiredError("address")
	}
	a.formatted = formatted
	return nil
}

func (a *DeliveryAddress) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	a.point = point
	return nil
}
