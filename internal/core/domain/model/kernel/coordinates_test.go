package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinates(t *testing.T) {
	t.Run("valid point", func(t *testing.T) {
		c, err := kernel.NewCoordinates(52.52, 13.405)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.InDelta(t, 52.52, c.Lat(), 1e-9)
		assert.InDelta(t, 13.405, c.Lng(), 1e-9)
		assert.Equal(t, "(52.520000, 13.405000)", c.String())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		_, err := kernel.NewCoordinates(-90, 180)
		require.NoError(t, err)
	})

	t.Run("out of range values are joined", func(t *testing.T) {
		_, err := kernel.NewCoordinates(91, -181)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c kernel.Coordinates
		assert.Equal(t, kernel.ErrCoordinatesAreNotConstructed, c.Validate())
	})
}
