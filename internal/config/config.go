// Package config loads the extraction service configuration from the
// environment. Vendor credentials are optional: a missing credential disables
// the strategies that need it without failing startup.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the extraction pipeline and its HTTP surfaces
// need at startup.
type Config struct {
	Port string

	// Vendor credentials. Empty means the corresponding credentialed
	// strategies are skipped, not retried.
	TicketmasterAPIKey string
	SeatGeekClientID   string

	// Per-network-step bound. A single slow upstream must not stall the
	// whole request, so every strategy attempt runs under this timeout.
	StepTimeout time.Duration

	// Overall HTTP client timeout for page fetches.
	FetchTimeout time.Duration

	MaxBodyBytes int64
}

// Parse reads the configuration from environment variables, applying
// defaults for anything unset.
func Parse() Config {
	return Config{
		Port:               getString("PORT", "8080"),
		TicketmasterAPIKey: getString("TICKETMASTER_API_KEY", ""),
		SeatGeekClientID:   getString("SEATGEEK_CLIENT_ID", ""),
		StepTimeout:        time.Duration(getInt("STEP_TIMEOUT_MS", 10_000)) * time.Millisecond,
		FetchTimeout:       time.Duration(getInt("FETCH_TIMEOUT_MS", 15_000)) * time.Millisecond,
		MaxBodyBytes:       int64(getInt("MAX_BODY_BYTES", 1_048_576)),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
