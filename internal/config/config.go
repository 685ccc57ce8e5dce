package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Startup gate: how long to wait for the store to become reachable
	// before refusing to start.
	StoreWaitAttempts int           `mapstructure:"store_wait_attempts" yaml:"store_wait_attempts"`
	StoreWaitDelay    time.Duration `mapstructure:"store_wait_delay" yaml:"store_wait_delay"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "./data/pairpad.db",
		LogLevel:          "info",
		StoreWaitAttempts: 10,
		StoreWaitDelay:    2 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.StoreWaitAttempts != 0 {
		c.StoreWaitAttempts = other.StoreWaitAttempts
	}
	if other.StoreWaitDelay != 0 {
		c.StoreWaitDelay = other.StoreWaitDelay
	}
}
