package geocoding

import (
	"context"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Provider is an interface that defines a method for reverse geocoding a
// geographical point. The ReverseGeocode method takes a context and a
// coordinate pair in degrees, and returns a human-readable display label
// for the location and an error if any occurs.
type Provider interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error)
}
