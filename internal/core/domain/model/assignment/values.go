package assignment

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ProductSnapshot freezes the shipped product at creation time so that later
// catalog edits do not rewrite delivery history.
type ProductSnapshot struct {
	ProductID kernel.UUID
	Name      string
	ImageURL  string
	SKU       string
	Quantity  int
}

func NewProductSnapshot(productID kernel.UUID, name, imageURL, sku string, quantity int) (ProductSnapshot, error) {
	s := ProductSnapshot{
		ProductID: productID,
		Name:      strings.TrimSpace(name),
		ImageURL:  strings.TrimSpace(imageURL),
		SKU:       strings.TrimSpace(sku),
		Quantity:  quantity,
	}
	return s, s.Validate()
}

func (s ProductSnapshot) Validate() error {
	var nameErr, qtyErr error
	if s.Name == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}
	if s.Quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", s.Quantity))
	}
	return errors.Join(s.ProductID.Validate(), nameErr, qtyErr)
}

// Driver is the party allowed to move an assignment through its lifecycle.
type Driver struct {
	ID    string
	Name  string
	Email string
}

func NewDriver(id, name, email string) (Driver, error) {
	normalized, emailErr := kernel.NormalizeEmail(email)

	var idErr, nameErr error
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		idErr = errs.NewValueIsRequiredError("driver id")
	}
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("driver name")
	}
	if err := errors.Join(idErr, nameErr, emailErr); err != nil {
		return Driver{}, err
	}

	return Driver{ID: id, Name: name, Email: normalized}, nil
}

// Identity is the event hub key of the driver.
func (d Driver) Identity() kernel.Identity {
	id, _ := kernel.NewIdentity(d.ID, d.Email)
	return id
}

// Destination is the free-text delivery address with optional resolved coordinates.
type Destination struct {
	Address     string
	Coordinates *kernel.Coordinates
}

func NewDestination(address string, coordinates *kernel.Coordinates) (Destination, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Destination{}, errs.NewValueIsRequiredError("destination")
	}
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return Destination{}, err
		}
	}
	return Destination{Address: address, Coordinates: coordinates}, nil
}
