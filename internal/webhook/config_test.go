package webhook

import (
	"math"
	"testing"
	"time"

	"github.com/mattjoyce/dongerhook/internal/config"
)

func TestFromConfig(t *testing.T) {
	c := config.Defaults()
	c.Server.Path = "/interactions"
	c.Server.MaxBodySize = "64KB"

	cfg, err := FromConfig(c)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":8000" || cfg.Path != "/interactions" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxBodySize != 64*1024 {
		t.Errorf("MaxBodySize = %d, want %d", cfg.MaxBodySize, 64*1024)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.MetricsPath != "/metrics" {
		t.Errorf("MetricsPath = %q, want /metrics", cfg.MetricsPath)
	}

	c.Metrics.Enabled = false
	cfg, err = FromConfig(c)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MetricsPath != "" {
		t.Errorf("MetricsPath = %q, want empty when disabled", cfg.MetricsPath)
	}
}

func TestFromConfigErrors(t *testing.T) {
	if _, err := FromConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	c := config.Defaults()
	c.Server.MaxBodySize = "huge"
	if _, err := FromConfig(c); err == nil {
		t.Error("expected error for bad max_body_size")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Path != "/" || cfg.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ReadTimeout != DefaultReadTimeout || cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("timeouts = %+v", cfg)
	}
}

func TestConfigDefaults_ClampsMaxBodySize(t *testing.T) {
	cfg := Config{MaxBodySize: math.MaxInt64}.withDefaults()
	if cfg.MaxBodySize != config.MaxBodySizeLimit {
		t.Errorf("MaxBodySize = %d, want %d", cfg.MaxBodySize, config.MaxBodySizeLimit)
	}
}
