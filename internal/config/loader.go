package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/dongerhook/internal/signature"
)

// DefaultConfigFile is picked up from the working directory when no path is given.
const DefaultConfigFile = "dongerhook.yaml"

// HealthPath is reserved for the liveness probe.
const HealthPath = "/healthz"

// ErrMissingPublicKey is returned when no platform public key is configured.
var ErrMissingPublicKey = errors.New(EnvPublicKey + " is required")

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Discover returns the config file to use when none was given explicitly:
// $DONGERHOOK_CONFIG, then ./dongerhook.yaml. Empty means defaults only.
func Discover() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Load reads configuration and validates it.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Read builds a Config from defaults, an optional YAML file, a .env file
// and the environment, without validating it.
func Read(configPath string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := Defaults()

	if configPath != "" {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("config file not found: %s\n"+
				"Hint: Check the path or run with --config flag", absPath)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", absPath, err)
		}
		cfg.SourcePath = absPath
	}

	cfg.Discord.PublicKey = interpolateEnv(cfg.Discord.PublicKey)
	cfg.Server.Listen = interpolateEnv(cfg.Server.Listen)
	cfg.Content.Path = interpolateEnv(cfg.Content.Path)

	if v := os.Getenv(EnvPublicKey); v != "" {
		cfg.Discord.PublicKey = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Service.LogLevel = v
	}

	cfg.Discord.PublicKey = strings.TrimSpace(cfg.Discord.PublicKey)
	if cfg.Content.Path != "" && !filepath.IsAbs(cfg.Content.Path) && cfg.SourcePath != "" {
		cfg.Content.Path = filepath.Join(filepath.Dir(cfg.SourcePath), cfg.Content.Path)
	}

	return cfg, nil
}

// interpolateEnv replaces ${VAR} with the environment value.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		// Extract variable name from ${VAR}
		varName := envVarPattern.FindStringSubmatch(match)[1]

		// Look up environment variable
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}

		// If not found, leave the placeholder (will fail validation if required)
		return match
	})
}

// Validate checks the configuration. The first problem found is returned.
func (c *Config) Validate() error {
	checks := []func() error{
		c.ValidateLogLevel,
		c.ValidateLogFormat,
		c.ValidateListen,
		c.ValidatePath,
		c.ValidateMaxBodySize,
		c.ValidateTimeouts,
		c.ValidatePublicKey,
		c.ValidateMetrics,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLogLevel checks service.log_level.
func (c *Config) ValidateLogLevel() error {
	switch strings.ToLower(c.Service.LogLevel) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("service.log_level %q must be one of debug, info, warn, error", c.Service.LogLevel)
}

// ValidateLogFormat checks service.log_format.
func (c *Config) ValidateLogFormat() error {
	if f := strings.ToLower(c.Service.LogFormat); f != "json" && f != "text" {
		return fmt.Errorf("service.log_format %q must be json or text", c.Service.LogFormat)
	}
	return nil
}

// ValidateListen checks that server.listen is a host:port pair.
func (c *Config) ValidateListen() error {
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("server.listen: invalid listen address %q: %w", c.Server.Listen, err)
	}
	return nil
}

// ValidatePath checks that server.path is absolute and not the health route.
func (c *Config) ValidatePath() error {
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server.path %q must start with /", c.Server.Path)
	}
	if c.Server.Path == HealthPath {
		return fmt.Errorf("server.path %s is reserved for health checks", HealthPath)
	}
	return nil
}

// ValidateMaxBodySize checks server.max_body_size.
func (c *Config) ValidateMaxBodySize() error {
	if _, err := c.MaxBodyBytes(); err != nil {
		return fmt.Errorf("server.max_body_size: invalid size %q: %w", c.Server.MaxBodySize, err)
	}
	return nil
}

// ValidateTimeouts checks that every server timeout is positive.
func (c *Config) ValidateTimeouts() error {
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	return nil
}

// ValidateMetrics checks metrics.path when metrics are enabled.
func (c *Config) ValidateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path)
	}
	if c.Metrics.Path == c.Server.Path || c.Metrics.Path == HealthPath {
		return fmt.Errorf("metrics.path %q collides with another route", c.Metrics.Path)
	}
	return nil
}

// ValidatePublicKey reports a missing, unresolved or malformed public key.
func (c *Config) ValidatePublicKey() error {
	key := c.Discord.PublicKey
	if key == "" || envVarPattern.MatchString(key) {
		return ErrMissingPublicKey
	}
	if _, err := signature.ParsePublicKey(key); err != nil {
		return fmt.Errorf("discord.public_key: %w", err)
	}
	return nil
}

// MaxBodySizeLimit is the largest accepted server.max_body_size.
const MaxBodySizeLimit int64 = 1 << 30

// MaxBodyBytes parses Server.MaxBodySize.
func (c *Config) MaxBodyBytes() (int64, error) {
	return parseSize(c.Server.MaxBodySize)
}

// parseSize parses size strings like "1MB", "512KB", "1048576" to bytes.
// Returns the 1MB default if empty.
func parseSize(size string) (int64, error) {
	if size == "" {
		return 1 << 20, nil
	}

	upper := strings.ToUpper(strings.TrimSpace(size))
	multiplier := int64(1)

	switch {
	case strings.HasSuffix(upper, "KB"):
		multiplier = 1 << 10
		upper = strings.TrimSuffix(upper, "KB")
	case strings.HasSuffix(upper, "MB"):
		multiplier = 1 << 20
		upper = strings.TrimSuffix(upper, "MB")
	case strings.HasSuffix(upper, "GB"):
		multiplier = 1 << 30
		upper = strings.TrimSuffix(upper, "GB")
	}

	value, err := strconv.ParseInt(strings.TrimSpace(upper), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}

	if value > MaxBodySizeLimit/multiplier {
		return 0, fmt.Errorf("size exceeds %d bytes", MaxBodySizeLimit)
	}
	return value * multiplier, nil
}
