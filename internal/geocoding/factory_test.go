package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create Google provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogle,
			APIKey:    "test-api-key",
			RateLimit: 10,
			Logger:    logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
		// Verify it's a GoogleProvider by type assertion
		_, ok := provider.(*geocoding.GoogleProvider)
		assert.True(t, ok, "expected provider to be *GoogleProvider")
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			APIKey: "",
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("create Nominatim provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeNominatim,
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
		_, ok := provider.(*geocoding.NominatimProvider)
		assert.True(t, ok, "expected provider to be *NominatimProvider")
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("bing"),
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type")
	})
}
