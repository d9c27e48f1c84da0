package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the trajectory export worker.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the monitoring server.
// - ProviderType: The reverse geocoding provider used for path labels (google, nominatim, none).
// - APIKey: The API key for the reverse geocoding provider (required for Google).
// - Workers: The number of concurrent workers for processing export tasks.
// - Interval: The duration between polling intervals.
// - TemplatePath: Path of the KML template the exporter splices paths into.
// - OutputDir: Directory receiving KML and PNG artifacts.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string
	Port         int
	ProviderType string
	APIKey       string
	Workers      int
	Interval     time.Duration
	TemplatePath string
	OutputDir    string
	Database     PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment (optionally seeded
// from a .env file) and returns a Config. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	interval, err := time.ParseDuration(setDefaultEnv("MERIDIAN_INTERVAL", "1m"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("MERIDIAN_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(setDefaultEnv("MERIDIAN_WORKERS", "4"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer type")
	}

	return &Config{
		Env:          setDefaultEnv("MERIDIAN_ENV", "production"),
		Port:         healthPort,
		ProviderType: setDefaultEnv("MERIDIAN_PROVIDER_TYPE", "none"),
		APIKey:       os.Getenv("MERIDIAN_PROVIDER_KEY"),
		Workers:      workers,
		Interval:     interval,
		TemplatePath: setDefaultEnv("MERIDIAN_TEMPLATE_PATH", "template.kml"),
		OutputDir:    setDefaultEnv("MERIDIAN_OUTPUT_DIR", "artifacts"),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
