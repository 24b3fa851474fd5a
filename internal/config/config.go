package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the CLI configuration loaded from the environment and an optional .env file.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	LogLevel              string        `mapstructure:"log_level"`
	Host                  string        `mapstructure:"dls_host"`
	Port                  int           `mapstructure:"dls_port"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	OutputFormat          string        `mapstructure:"output_format"`
}

// Load reads configuration from environment variables and configs/.env.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "labybel")
	v.SetDefault("log_level", "info")
	v.SetDefault("dls_host", "http://127.0.0.1")
	v.SetDefault("dls_port", 41951)
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("output_format", OutputText)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and fills derived values. Callers that override
// fields after Load (e.g. from flags) should call it again.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("invalid dls_host (must not be empty)")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid dls_port %d (must be 1-65535)", c.Port)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	switch c.OutputFormat {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output_format %q", c.OutputFormat)
	}
	return nil
}
