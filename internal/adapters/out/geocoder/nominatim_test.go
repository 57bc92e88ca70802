package geocoder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch/internal/adapters/out/geocoder"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocoder_ResolvesFirstPlace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Alexanderplatz 1, Berlin", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"52.5219","lon":"13.4132"},{"lat":"0","lon":"0"}]`))
	}))
	defer srv.Close()

	g := geocoder.NewNominatimGeocoder(srv.URL+"/", time.Second)

	coords, err := g.Geocode(context.Background(), "Alexanderplatz 1, Berlin")

	require.NoError(t, err)
	assert.InDelta(t, 52.5219, coords.Lat(), 1e-9)
	assert.InDelta(t, 13.4132, coords.Lng(), 1e-9)
}

func TestNominatimGeocoder_EmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := geocoder.NewNominatimGeocoder(srv.URL, time.Second).Geocode(context.Background(), "nowhere")

	require.ErrorIs(t, err, ports.ErrAddressNotFound)
}

func TestNominatimGeocoder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: ``},
		{name: "malformed json", status: http.StatusOK, body: `{`},
		{name: "malformed latitude", status: http.StatusOK, body: `[{"lat":"north","lon":"1"}]`},
		{name: "latitude out of range", status: http.StatusOK, body: `[{"lat":"91","lon":"1"}]`, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := geocoder.NewNominatimGeocoder(srv.URL, time.Second).Geocode(context.Background(), "x")

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNominatimGeocoder_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := geocoder.NewNominatimGeocoder(srv.URL, 50*time.Millisecond).Geocode(context.Background(), "x")

	require.Error(t, err)
}

func TestNopGeocoder(t *testing.T) {
	_, err := geocoder.NopGeocoder{}.Geocode(context.Background(), "x")
	require.ErrorIs(t, err, ports.ErrAddressNotFound)
}
