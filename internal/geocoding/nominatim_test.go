package geocoding_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestNominatimProvider_ReverseGeocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	coords := models.Coordinates{Latitude: 42.292496, Longitude: -83.7145}

	t.Run("successful reverse geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				assert.Equal(t, "42.292496", req.URL.Query().Get("lat"))
				assert.Equal(t, "-83.7145", req.URL.Query().Get("lon"))
				assert.Equal(t, "jsonv2", req.URL.Query().Get("format"))
				assert.Equal(
					t,
					"Meridian-Trajectory-Toolkit/1.0 (https://github.com/UnknownOlympus/meridian)",
					req.Header.Get("User-Agent"),
				)

				// Return mock response
				responseBody := `{"display_name":"Ann Arbor, Washtenaw County, Michigan, USA"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		label, err := provider.ReverseGeocode(ctx, coords)

		require.NoError(t, err)
		assert.Equal(t, "Ann Arbor, Washtenaw County, Michigan, USA", label)
	})

	t.Run("empty response from API", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		label, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, label)
		assert.ErrorIs(t, err, geocoding.ErrNominatimEmptyResponse)
	})

	t.Run("non-OK status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Status:     "429 Too Many Requests",
					Body:       io.NopCloser(bytes.NewBufferString(``)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		_, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.ErrorIs(t, err, geocoding.ErrNominatimStatus)
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		_, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{not json`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		_, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode nominatim response")
	})
}
