package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates")

// Coordinates is a WGS84 point resolved from a destination address.
type Coordinates struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

func NewCoordinates(lat, lng float64) (Coordinates, error) {
	c := Coordinates{guard: guard.NewConstructorGuard()}
	if err := errors.Join(c.setLat(lat), c.setLng(lng)); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

func (c Coordinates) Lat() float64 {
	return c.lat
}

func (c Coordinates) Lng() float64 {
	return c.lng
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.lat, c.lng)
}

func (c *Coordinates) setLat(lat float64) error {
	if lat < -90 || lat > 90 {
		return errs.NewValueIsOutOfRangeError("latitude", lat, -90, 90)
	}
	c.lat = lat
	return nil
}

func (c *Coordinates) setLng(lng float64) error {
	if lng < -180 || lng > 180 {
		return errs.NewValueIsOutOfRangeError("longitude", lng, -180, 180)
	}
	c.lng = lng
	return nil
}
