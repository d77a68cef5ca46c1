package kernel

import (
	"errors"
	"fmt"

	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

const (
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint to ensure the
// coordinates were range-checked.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a WGS84 coordinate pair.
// The component order is longitude first, matching the on-disk representation
// used by geospatial indexes.
//
// The zero value is invalid and fails validation; use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(-6.8498, 33.9716)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with range-validated coordinates.
// Longitude must lie in [-180, 180] and latitude in [-90, 90].
func NewGeoPoint(longitude, latitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		point.setLongitude(longitude),
		point.setLatitude(latitude),
	); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate ensures the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Longitude returns the longitude component in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Latitude returns the latitude component in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// IsEqual compares two geo points by exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.longitude == other.longitude && p.latitude == other.latitude
}

// String implements fmt.Stringer in "(longitude,latitude)" form.
func (p GeoPoint) String() string {
	return fmt.Sprintf("(%g,%g)", p.longitude, p.latitude)
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	p.latitude = latitude
	return nil
}
