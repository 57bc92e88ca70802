package productrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/product"

	"github.com/google/uuid"
)

type ProductDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	SKU        string    `gorm:"index"`
	ImageURL   string
	Stock      int   `gorm:"not null;check:stock >= 0"`
	PriceCents int64 `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:         p.ID().Bytes(),
		Name:       p.Name(),
		SKU:        p.SKU(),
		ImageURL:   p.ImageURL(),
		Stock:      p.Stock(),
		PriceCents: p.PriceCents(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.SKU, dto.ImageURL, dto.Stock, dto.PriceCents)
}
