package config

import "time"

// Environment variables read at startup.
const (
	EnvPublicKey  = "DISCORD_PUBLIC_KEY"
	EnvListen     = "DONGERHOOK_LISTEN"
	EnvLogLevel   = "DONGERHOOK_LOG_LEVEL"
	EnvConfigPath = "DONGERHOOK_CONFIG"
)

// Config represents the complete dongerhook configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Server  ServerConfig  `yaml:"server"`
	Discord DiscordConfig `yaml:"discord"`
	Content ContentConfig `yaml:"content"`
	Metrics MetricsConfig `yaml:"metrics"`

	// SourcePath is the absolute path of the file this config was read
	// from, or empty when only defaults and the environment were used.
	SourcePath string `yaml:"-"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Listen string `yaml:"listen"`
	// Path is the interaction endpoint registered with the platform.
	Path string `yaml:"path"`
	// MaxBodySize accepts plain bytes or KB/MB/GB suffixes (default: 1MB)
	MaxBodySize     string        `yaml:"max_body_size"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DiscordConfig holds platform credentials.
type DiscordConfig struct {
	// PublicKey is the application's hex-encoded Ed25519 key.
	// DISCORD_PUBLIC_KEY overrides it when set.
	PublicKey string `yaml:"public_key"`
}

// ContentConfig locates the content table.
type ContentConfig struct {
	// Path to a YAML table; empty uses the built-in table.
	// Relative paths resolve against the config file's directory.
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:      "dongerhook",
			LogLevel:  "info",
			LogFormat: "json",
		},
		Server: ServerConfig{
			Listen:          ":8000",
			Path:            "/",
			MaxBodySize:     "1MB",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Discord: DiscordConfig{
			PublicKey: "${" + EnvPublicKey + "}",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
