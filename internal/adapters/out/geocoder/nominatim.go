// Package geocoder resolves delivery addresses through a Nominatim-compatible
// search endpoint (GET {base}/search?format=json&limit=1&q=...).
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const userAgent = "dispatch-geocoder/1.0"

type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

var _ ports.Geocoder = (*NominatimGeocoder)(nil)

func NewNominatimGeocoder(baseURL string, timeout time.Duration) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns ports.ErrAddressNotFound when the search yields nothing.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (kernel.Coordinates, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return kernel.Coordinates{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Coordinates{}, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var places []place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return kernel.Coordinates{}, fmt.Errorf("geocode response: %w", err)
	}
	if len(places) == 0 {
		return kernel.Coordinates{}, ports.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("geocode response: lat: %w", err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("geocode response: lon: %w", err)
	}

	return kernel.NewCoordinates(lat, lng)
}

// NopGeocoder never resolves anything. It is used when no endpoint is configured.
type NopGeocoder struct{}

func (NopGeocoder) Geocode(context.Context, string) (kernel.Coordinates, error) {
	return kernel.Coordinates{}, ports.ErrAddressNotFound
}
