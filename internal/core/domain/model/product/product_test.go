package product_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/product"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Pallet jack", "PJ-01", "https://img/pj.png", stock, 129900)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("should create valid product", func(t *testing.T) {
		p := newProduct(t, 5)

		require.NoError(t, p.Validate())
		assert.Equal(t, "Pallet jack", p.Name())
		assert.Equal(t, "PJ-01", p.SKU())
		assert.Equal(t, 5, p.Stock())
		assert.Equal(t, int64(129900), p.PriceCents())
		assert.False(t, p.IsOutOfStock())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		p, err := product.NewProduct(kernel.UUID{}, " ", "", "", -1, -1)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "stock")
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("zero stock is out of stock", func(t *testing.T) {
		assert.True(t, newProduct(t, 0).IsOutOfStock())
	})

	t.Run("literal product is not constructed", func(t *testing.T) {
		p := &product.Product{}
		require.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("decrements stock by exactly the quantity", func(t *testing.T) {
		for stock := 1; stock <= 6; stock++ {
			for q := 1; q <= stock; q++ {
				p := newProduct(t, stock)

				require.NoError(t, p.Reserve(q))
				assert.Equal(t, stock-q, p.Stock())
			}
		}
	})

	t.Run("reserving the remaining stock leaves product out of stock", func(t *testing.T) {
		p := newProduct(t, 5)

		require.NoError(t, p.Reserve(5))
		assert.Equal(t, 0, p.Stock())
		assert.True(t, p.IsOutOfStock())

		err := p.Reserve(1)
		require.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("over-reservation leaves stock unchanged", func(t *testing.T) {
		p := newProduct(t, 3)

		err := p.Reserve(4)

		require.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "requested 4, available 3")
		assert.Equal(t, 3, p.Stock())
	})

	t.Run("non positive quantity is invalid", func(t *testing.T) {
		p := newProduct(t, 3)

		require.ErrorIs(t, p.Reserve(0), errs.ErrValueIsInvalid)
		require.ErrorIs(t, p.Reserve(-2), errs.ErrValueIsInvalid)
		assert.Equal(t, 3, p.Stock())
	})
}

func TestProduct_Return(t *testing.T) {
	p := newProduct(t, 0)

	require.NoError(t, p.Return(2))
	assert.Equal(t, 2, p.Stock())
	require.ErrorIs(t, p.Return(0), errs.ErrValueIsInvalid)
}
