package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadServer.
const (
	EnvHTTPAddr   = "SIMULATOR_HTTP_ADDR"
	EnvConfigPath = "SIMULATOR_CONFIG"
	EnvNATSURL    = "SIMULATOR_NATS_URL"
	EnvLocale     = "SIMULATOR_LOCALE"
	EnvLogLevel   = "SIMULATOR_LOG_LEVEL"
)

// Defaults for unset environment variables.
const (
	DefaultHTTPAddr   = "0.0.0.0:8000"
	DefaultConfigPath = "config/simulator.yml"
	DefaultLocale     = "en"
	DefaultLogLevel   = "info"
)

// Server holds process-level settings for the HTTP transport.
type Server struct {
	HTTPAddr   string // SIMULATOR_HTTP_ADDR (default "0.0.0.0:8000")
	ConfigPath string // SIMULATOR_CONFIG (default "config/simulator.yml")
	NATSURL    string // SIMULATOR_NATS_URL (optional, empty = no events)
	Locale     string // SIMULATOR_LOCALE (default "en")
	LogLevel   string // SIMULATOR_LOG_LEVEL (default "info")
}

// LoadServer reads server settings from the environment.
//
// Each envFile that exists is loaded first with godotenv; variables already
// set in the process environment win over file values. Missing files are
// skipped.
func LoadServer(envFiles ...string) (*Server, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return &Server{
		HTTPAddr:   envOrDefault(EnvHTTPAddr, DefaultHTTPAddr),
		ConfigPath: envOrDefault(EnvConfigPath, DefaultConfigPath),
		NATSURL:    os.Getenv(EnvNATSURL),
		Locale:     envOrDefault(EnvLocale, DefaultLocale),
		LogLevel:   envOrDefault(EnvLogLevel, DefaultLogLevel),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
