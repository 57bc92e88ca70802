package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/product"
)

// ProductRepository is the persistence contract of the inventory ledger.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, p *product.Product) error

	// Get returns the product or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends, so concurrent reservations of one product serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Update writes the product's stock and attributes back.
	Update(ctx context.Context, p *product.Product) error
}
