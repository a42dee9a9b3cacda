package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTES_HTTP_HOST" env-default:""`
	Port         int           `yaml:"port" env:"PORT" env-default:"3001"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTES_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress returns the listen address in host:port form.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
