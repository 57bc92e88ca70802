package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrAddressNotFound is returned by a Geocoder that cannot resolve an address.
var ErrAddressNotFound = errors.New("address not found")

// Geocoder resolves a free-text destination into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.Coordinates, error)
}

// PushMessage is a best-effort mobile notification for a driver.
type PushMessage struct {
	DriverEmail  string
	AssignmentID string
	Title        string
	Body         string
}

// PushNotifier delivers push notifications to a driver's devices.
type PushNotifier interface {
	Notify(ctx context.Context, msg PushMessage) error
}
