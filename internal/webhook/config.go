package webhook

import (
	"fmt"

	"github.com/mattjoyce/dongerhook/internal/config"
)

// FromConfig converts the loaded service configuration to webhook.Config.
func FromConfig(c *config.Config) (Config, error) {
	if c == nil {
		return Config{}, fmt.Errorf("config is nil")
	}

	maxBodySize, err := c.MaxBodyBytes()
	if err != nil {
		return Config{}, fmt.Errorf("invalid max_body_size %q: %w", c.Server.MaxBodySize, err)
	}

	cfg := Config{
		Listen:          c.Server.Listen,
		Path:            c.Server.Path,
		MaxBodySize:     maxBodySize,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
	if c.Metrics.Enabled {
		cfg.MetricsPath = c.Metrics.Path
	}
	return cfg, nil
}
