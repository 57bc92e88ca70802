package product

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

	// ErrInsufficientStock is returned when a reservation exceeds the available units.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a catalog item with a stock counter.
//
// Invariants:
//   - stock is never negative
//   - priceCents is never negative
//   - name is not blank
type Product struct {
	id         kernel.UUID
	name       string
	sku        string
	imageURL   string
	stock      int
	priceCents int64

	isConstructed bool
}

// NewProduct creates a product with the given opening stock.
func NewProduct(id kernel.UUID, name, sku, imageURL string, stock int, priceCents int64) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setStock(stock),
		p.setPrice(priceCents),
	); err != nil {
		return nil, err
	}
	p.sku = strings.TrimSpace(sku)
	p.imageURL = strings.TrimSpace(imageURL)

	return p, nil
}

// RestoreProduct rebuilds a product from persistence. The same invariants apply.
func RestoreProduct(id kernel.UUID, name, sku, imageURL string, stock int, priceCents int64) (*Product, error) {
	return NewProduct(id, name, sku, imageURL, stock, priceCents)
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) SKU() string {
	return p.sku
}

func (p *Product) ImageURL() string {
	return p.imageURL
}

func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) PriceCents() int64 {
	return p.priceCents
}

// IsOutOfStock is derived from the counter.
func (p *Product) IsOutOfStock() bool {
	return p.stock == 0
}

// Reserve takes quantity units out of stock. Reserving exactly the remaining
// stock is allowed and leaves the product out of stock.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > p.stock {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, p.stock)
	}

	p.stock -= quantity
	return nil
}

// Return puts quantity units back into stock.
func (p *Product) Return(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	p.stock += quantity
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}

func (p *Product) setPrice(priceCents int64) error {
	if priceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", priceCents))
	}
	p.priceCents = priceCents
	return nil
}
