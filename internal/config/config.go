package config

import (
	"fmt"
	"os"
)

// Config holds the MaaS connection settings, sourced from the environment.
type Config struct {
	APIURL     string
	APIKey     string
	APIVersion string
}

// Load reads and validates the environment. It performs no I/O, so a missing
// variable fails before any network activity.
func Load() (Config, error) {
	cfg := Config{
		APIURL:     os.Getenv("MAAS_API_URL"),
		APIKey:     os.Getenv("MAAS_API_KEY"),
		APIVersion: getEnv("MAAS_API_VERSION", "2.0"),
	}
	if cfg.APIURL == "" {
		return Config{}, fmt.Errorf("MAAS_API_URL environment variable must be set")
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("MAAS_API_KEY environment variable must be set")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
