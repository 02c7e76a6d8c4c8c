package config

import (
	"os"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultInstanceID      = "fuelrun"
	DefaultBaseURL         = "https://api.onegov.nsw.gov.au"
	DefaultState           = "NSW"
	DefaultAPITimeout      = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryBackoff    = 1 * time.Second
	DefaultSnapshotDir     = "data"
	DefaultRefreshInterval = 12 * time.Hour
	DefaultRefreshTimeout  = 5 * time.Minute
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultHealthPort      = 8080
)

// Environment variables consulted when the corresponding field is unset.
const (
	EnvAuthorization = "BASE64_AUTH"
	EnvAPIKey        = "NSW_APIKEY"
)

func (c *Config) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = DefaultInstanceID
	}

	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Authorization == "" {
		c.API.Authorization = os.Getenv(EnvAuthorization)
	}
	if c.API.APIKey == "" {
		c.API.APIKey = os.Getenv(EnvAPIKey)
	}
	if len(c.API.States) == 0 {
		c.API.States = []string{DefaultState}
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Snapshot defaults
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}

	// Refresh defaults
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = DefaultRefreshInterval
	}
	if c.Refresh.Timeout == 0 {
		c.Refresh.Timeout = DefaultRefreshTimeout
	}

	// Archive defaults (only meaningful when enabled)
	applyDBDefaults(&c.Archive.Postgres)

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
