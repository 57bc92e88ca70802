package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/product"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func shipmentRequest(t *testing.T, quantity int) services.ShipmentRequest {
	t.Helper()
	driver, err := assignment.NewDriver("drv-7", "Sam", "sam@fleet.io")
	require.NoError(t, err)
	dest, err := assignment.NewDestination("Dock 4", nil)
	require.NoError(t, err)
	staff, err := kernel.NewIdentity("staff-2", "ops@fleet.io")
	require.NoError(t, err)

	return services.ShipmentRequest{
		AssignmentID: kernel.NewUUID(),
		Quantity:     quantity,
		Driver:       driver,
		Destination:  dest,
		MarkedBy:     staff,
	}
}

func TestShipper_Ship(t *testing.T) {
	t.Run("reserves stock and snapshots product", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Rebar", "RB-1", "img", 5, 100)
		req := shipmentRequest(t, 5)

		a, err := services.NewShipper().Ship(p, req, now)

		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock())
		assert.True(t, p.IsOutOfStock())
		assert.Equal(t, assignment.Pending, a.Status())
		assert.Equal(t, "Rebar", a.Product().Name)
		assert.Equal(t, "RB-1", a.Product().SKU)
		assert.Equal(t, 5, a.Product().Quantity)
		assert.True(t, a.Product().ProductID.IsEqual(p.ID()))
	})

	t.Run("insufficient stock leaves product unchanged", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Rebar", "RB-1", "img", 0, 100)

		a, err := services.NewShipper().Ship(p, shipmentRequest(t, 1), now)

		require.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.Nil(t, a)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("invalid assignment rolls the reservation back", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Rebar", "RB-1", "img", 4, 100)
		req := shipmentRequest(t, 2)
		req.MarkedBy = kernel.Identity{}

		_, err := services.NewShipper().Ship(p, req, now)

		require.Error(t, err)
		assert.Equal(t, 4, p.Stock())
	})
}
