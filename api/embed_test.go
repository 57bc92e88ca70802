package api_test

import (
	"testing"

	"dispatch/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load()
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/assignments",
		"/api/v1/assignments/{id}/transitions",
		"/api/v1/archive/count",
		"/api/v1/archive/sweep",
		"/api/v1/events",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}
