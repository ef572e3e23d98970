package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLongitude is the lowest valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the highest valid longitude in degrees.
	MaxLongitude = 180.0
	// MinLatitude is the lowest valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the highest valid latitude in degrees.
	MaxLatitude = 90.0
)

// ErrLocationIsNotConstructed is returned when a Location was not created via NewLocation.
// Stored entities with a missing or malformed coordinate are restored with a zero Location,
// so this error is also what route planning sees for such entities.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a WGS84 coordinate stored in (longitude, latitude) order, the
// order the routing provider expects.
//
// The zero value is invalid. Use NewLocation to create instances.
//
// Example:
//
//	depot, err := kernel.NewLocation(79.0820556, 21.1498134)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(depot) // Location(79.0820556,21.1498134)
type Location struct { //nolint:recvcheck //using for validation
	lng   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewLocation validates lng and lat and returns a Location.
//
// Both values must be finite. Longitude must lie in [MinLongitude, MaxLongitude]
// and latitude in [MinLatitude, MaxLatitude].
func NewLocation(lng float64, lat float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLng(lng), loc.setLat(lat)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports ErrLocationIsNotConstructed for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// LngLat returns the coordinate as a [lng, lat] pair.
func (l Location) LngLat() [2]float64 {
	return [2]float64{l.lng, l.lat}
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%g,%g)", l.lng, l.lat)
}

// IsEqual compares two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lng == other.lng && l.lat == other.lat, nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return errs.NewValueIsInvalidErrorWithCause("longitude", fmt.Errorf("%v is not a finite number", lng))
	}
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}

	l.lng = lng
	return nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("latitude", fmt.Errorf("%v is not a finite number", lat))
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	l.lat = lat
	return nil
}
