package webhook

import (
	"context"
	"time"

	"github.com/mattjoyce/dongerhook/internal/config"
	"github.com/mattjoyce/dongerhook/internal/interaction"
)

// Dispatcher turns a buffered request into a reply.
type Dispatcher interface {
	Dispatch(ctx context.Context, req interaction.RawRequest) interaction.Reply
}

// Config holds HTTP server configuration.
type Config struct {
	Listen string

	// Path is the interaction endpoint (e.g., "/" or "/interactions")
	Path string

	// MaxBodySize is the maximum allowed request body size in bytes (default: 1MB)
	MaxBodySize int64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// MetricsPath serves Prometheus metrics; empty disables the endpoint.
	MetricsPath string
}

// ErrorResponse is the JSON response for errors raised before dispatch.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON response for the liveness probe.
type HealthResponse struct {
	Status string `json:"status"`
}

// RequestIDHeader echoes the id attached to each request's logs.
const RequestIDHeader = "X-Request-Id"

// Default values
const (
	DefaultMaxBodySize     = 1048576 // 1 MB
	DefaultPath            = "/"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
	if c.MaxBodySize > config.MaxBodySizeLimit {
		c.MaxBodySize = config.MaxBodySizeLimit
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}
