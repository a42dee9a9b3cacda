package config

import "time"

// ShutdownConfig configures graceful shutdown.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"NOTES_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout returns Timeout as a Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
