package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
	"golang.org/x/time/rate"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's
// Nominatim reverse geocoding API. This is a free service with usage limits
// (1 request/second for fair use), enforced here with a rate limiter.
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim reverse API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter honoring the fair-use policy
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from the Nominatim reverse API.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimStatus        = errors.New("nominatim API returned non-OK status")
)

// NewNominatimProvider creates a new Nominatim reverse geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: "https://nominatim.openstreetmap.org/reverse",
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "Meridian-Trajectory-Toolkit/1.0 (https://github.com/UnknownOlympus/meridian)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	p := NewNominatimProvider(log)
	p.client = client
	p.limiter = rate.NewLimiter(rate.Inf, 1)
	return p
}

// ReverseGeocode resolves a display label for the given coordinates using
// the Nominatim reverse API. It respects Nominatim's usage policy by
// waiting on the rate limiter and including a User-Agent header.
func (np *NominatimProvider) ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter interrupted: %w", err)
	}

	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim",
		"lat", coords.Latitude, "lon", coords.Longitude)

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, np.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call nominatim API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrNominatimStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read nominatim response: %w", err)
	}

	var parsed nominatimResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if parsed.DisplayName == "" {
		return "", ErrNominatimEmptyResponse
	}

	return parsed.DisplayName, nil
}
