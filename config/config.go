package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/kbukum/tripclient/apiclient"
	"github.com/kbukum/tripclient/logger"
	"github.com/kbukum/tripclient/observability"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

var validEnvironments = []string{EnvDevelopment, EnvStaging, EnvProduction}

// DefaultBaseURLs are the backend addresses per environment.
var DefaultBaseURLs = map[string]string{
	EnvDevelopment: "http://localhost:8000",
	EnvStaging:     "https://staging.api.tripplanner.dev",
	EnvProduction:  "https://api.tripplanner.dev",
}

// Config is the complete client configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

// APIConfig selects and tunes the backend connection.
type APIConfig struct {
	// BaseURL overrides the per-environment address when set.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// BaseURLs replaces entries of DefaultBaseURLs.
	BaseURLs           map[string]string    `yaml:"base_urls" mapstructure:"base_urls"`
	Timeout            time.Duration        `yaml:"timeout" mapstructure:"timeout"`
	ExposeRawErrorText bool                 `yaml:"expose_raw_error_text" mapstructure:"expose_raw_error_text"`
	RequestIDHeader    string               `yaml:"request_id_header" mapstructure:"request_id_header"`
	DefaultHeaders     map[string]string    `yaml:"default_headers" mapstructure:"default_headers"`
	TLS                *apiclient.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// SessionConfig controls where the access token is kept between runs.
type SessionConfig struct {
	TokenFile string `yaml:"token_file" mapstructure:"token_file"`
}

// TracingConfig enables OTLP trace export.
type TracingConfig struct {
	Enabled                    bool `yaml:"enabled" mapstructure:"enabled"`
	observability.TracerConfig `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "tripctl"
	}
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.API.RequestIDHeader == "" {
		c.API.RequestIDHeader = "X-Request-ID"
	}
	c.Logging.ApplyDefaults()

	defaults := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaults.ServiceName
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = defaults.Endpoint
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = defaults.SampleRate
	}
}

// LoggerConfig returns the logging settings with Debug applied: it lowers an
// info, warn or error level to debug and leaves trace and disabled alone.
func (c *Config) LoggerConfig() logger.Config {
	lc := c.Logging
	if c.Debug {
		switch lc.Level {
		case "info", "warn", "error":
			lc.Level = "debug"
		}
	}
	return lc
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validEnvironments, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvironments, c.Environment)
	}
	if c.BaseURL() == "" {
		return fmt.Errorf("config.api: no base URL for environment %s", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("config.tracing.sample_rate must be between 0 and 1 (got: %v)", c.Tracing.SampleRate)
	}
	cc := c.ClientConfig("")
	if err := cc.Validate(); err != nil {
		return fmt.Errorf("config.api: %w", err)
	}
	return nil
}

// BaseURL resolves the backend address: the explicit override, then the
// configured per-environment entry, then DefaultBaseURLs.
func (c *Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	if u := c.API.BaseURLs[c.Environment]; u != "" {
		return u
	}
	return DefaultBaseURLs[c.Environment]
}

// ClientConfig builds the apiclient configuration. rules are appended as
// message rules.
func (c *Config) ClientConfig(userAgent string, rules ...apiclient.MessageRule) apiclient.Config {
	return apiclient.Config{
		BaseURL:            c.BaseURL(),
		DefaultHeaders:     c.API.DefaultHeaders,
		Timeout:            c.API.Timeout,
		ExposeRawErrorText: c.API.ExposeRawErrorText,
		RequestIDHeader:    c.API.RequestIDHeader,
		UserAgent:          userAgent,
		TLS:                c.API.TLS,
		MessageRules:       rules,
	}
}

// Load resolves files, reads them into a Config, applies defaults and
// validates the result.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig("tripctl", &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
