// Package geo resolves free-text addresses to coordinates through a
// Nominatim-compatible endpoint.
package geo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/EmanuelGdA/AnjoAnimal/config"
	"github.com/EmanuelGdA/AnjoAnimal/models"
)

// Geocoder performs forward geocoding. Callers treat failures as non-fatal:
// a report without coordinates is still a valid report.
type Geocoder struct {
	http       *resty.Client
	citySuffix string
	logger     *zap.Logger
}

// NewGeocoder builds a client for the configured endpoint. The city suffix
// is appended to every query to anchor street-level addresses.
func NewGeocoder(cfg config.GeocoderConfig, citySuffix string, logger *zap.Logger) *Geocoder {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetTimeout(cfg.Timeout)

	return &Geocoder{
		http:       client,
		citySuffix: citySuffix,
		logger:     logger,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Forward resolves an address to its best-match coordinates. Returns nil
// (with an error for logging) when the address cannot be resolved.
func (g *Geocoder) Forward(ctx context.Context, address string) (*models.GeoPoint, error) {
	var results []searchResult
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"q":      fmt.Sprintf("%s, %s", address, g.citySuffix),
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocode request failed: status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no match for address %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &models.GeoPoint{Latitude: lat, Longitude: lon}, nil
}
