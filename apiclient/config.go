package apiclient

import (
	"fmt"
	"net/url"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the API client.
type Config struct {
	// BaseURL prefixes every endpoint verbatim.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// DefaultHeaders seed every request after the JSON content headers and
	// before per-call headers.
	DefaultHeaders map[string]string `yaml:"default_headers" mapstructure:"default_headers"`

	// Timeout bounds the default transport. Defaults to 30s. Ignored when a
	// custom Doer is supplied.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ExposeRawErrorText uses the raw text of an unparsable error body as the
	// error message instead of the per-status default.
	ExposeRawErrorText bool `yaml:"expose_raw_error_text" mapstructure:"expose_raw_error_text"`

	// RequestIDHeader, when set, sends each request's correlation ID under
	// this header name.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`

	// UserAgent is sent as the User-Agent header unless overridden.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS customizes the default transport. Ignored when a custom Doer is
	// supplied.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// MessageRules rewrite extracted error messages, first match wins.
	MessageRules []MessageRule `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("apiclient: base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("apiclient: invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("apiclient: base_url must be http or https (got: %q)", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("apiclient: timeout must be positive")
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	for i, rule := range c.MessageRules {
		if rule.Match == nil {
			return fmt.Errorf("apiclient: message rule %d has no matcher", i)
		}
	}
	return nil
}
