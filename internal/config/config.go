package config

import (
	"os"
	"strconv"
	"time"

	"photodeck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Ops    OpsConfig
	Deck   DeckConfig
	Data   DataConfig
}

// ServerConfig holds presentation server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds the operational sidecar settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// DeckConfig holds navigation behavior settings
type DeckConfig struct {
	WheelCooldown time.Duration
	SessionTTL    time.Duration
}

// DataConfig holds measurement data source settings
type DataConfig struct {
	MeasurementsFile string // optional .xlsx/.csv override of embedded demo data
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Ops: OpsConfig{
			Port:    getEnv("OPS_PORT", "6060"),
			Enabled: getEnvBool("OPS_ENABLED", true),
		},
		Deck: DeckConfig{
			WheelCooldown: getEnvDuration("WHEEL_COOLDOWN_MS", 800) * time.Millisecond,
			SessionTTL:    getEnvDuration("SESSION_TTL_MIN", 30) * time.Minute,
		},
		Data: DataConfig{
			MeasurementsFile: os.Getenv("MEASUREMENTS_FILE"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("CONFIG_INVALID", "server port must not be empty")
	}
	if cfg.Deck.WheelCooldown <= 0 {
		return errors.New("CONFIG_INVALID", "wheel cooldown must be positive")
	}
	if cfg.Deck.SessionTTL <= 0 {
		return errors.New("CONFIG_INVALID", "session TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
