package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"stadiumevents/internal/domain"
)

// Config holds all configuration for the schedule core.
type Config struct {
	Environment   string
	StorePath     string
	VenueCapacity int
}

// Load reads configuration from environment variables, falling back to a
// .env file outside production. Missing values take local defaults so the
// schedule works out of the box on a development machine.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production only real environment variables count; elsewhere a
	// missing .env is fine.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		StorePath:     os.Getenv("EVENTS_STORE_PATH"),
		VenueCapacity: domain.DefaultVenueCapacity,
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "events.json"
	}
	if s := os.Getenv("VENUE_CAPACITY"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			log.Printf("Warning: ignoring invalid VENUE_CAPACITY %q", s)
		} else {
			cfg.VenueCapacity = n
		}
	}
	return cfg, nil
}
