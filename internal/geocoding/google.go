package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves display labels for trajectory reference points
// through the Google Maps reverse geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// ReverseGeocode resolves the formatted address nearest to the given
// coordinates using the Google Maps Geocoding API. If the response is
// empty, it returns an appropriate error.
func (gp *GoogleProvider) ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps",
		"lat", coords.Latitude, "lon", coords.Longitude)

	req := maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: coords.Latitude, Lng: coords.Longitude}}
	geocodeResponse, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode coordinates: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return "", ErrEmptyResponse
	}

	return geocodeResponse[0].FormattedAddress, nil
}
