package config

import "time"

// Config is the root configuration for a FuelRun instance.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Health   HealthConfig   `yaml:"health"`
}

// InstanceConfig identifies this instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds NSW OneGov API settings.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Authorization string        `yaml:"authorization"` // Base64 client credential (BASE64_AUTH)
	APIKey        string        `yaml:"apikey"`        // Consumer key for the apikey header
	States        []string      `yaml:"states"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryBackoff  time.Duration `yaml:"retry_backoff"`
}

// SnapshotConfig holds the on-disk snapshot store settings.
type SnapshotConfig struct {
	Dir string `yaml:"dir"`
}

// RefreshConfig holds daemon-mode refresh loop settings.
type RefreshConfig struct {
	// Interval between refresh cycles. Defaults to 12h, matching the
	// upstream token expiry.
	Interval time.Duration `yaml:"interval"`

	// Timeout for a single refresh cycle.
	Timeout time.Duration `yaml:"timeout"`
}

// ArchiveConfig holds the optional PostgreSQL archive settings.
type ArchiveConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// HealthConfig holds the daemon-mode health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
