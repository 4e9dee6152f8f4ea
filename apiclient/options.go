package apiclient

import (
	"context"
	"maps"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/tripclient/logger"
	"github.com/kbukum/tripclient/observability"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenProvider returns the current bearer token, or "" when there is none.
type TokenProvider func(ctx context.Context) (string, error)

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the default *http.Client transport.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithTracerProvider sets the tracer provider for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(observability.TracerName)
	}
}

// WithTokenProvider registers a token provider at construction time.
func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) {
		c.tokenProvider = p
	}
}

// RequestOptions describes one call. The zero value is a GET with no body.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Headers override default headers key-for-key.
	Headers map[string]string
	// Body is sent verbatim; nil means no body.
	Body []byte
	// Query parameters are added to the URL.
	Query map[string]string
	// Prepare runs last on the outgoing request for transport-specific
	// settings the pipeline does not model.
	Prepare func(*http.Request)
}

func (o *RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

// RequestOption adjusts RequestOptions for the convenience wrappers.
type RequestOption func(*RequestOptions)

// WithHeaders merges headers into the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}
		maps.Copy(o.Headers, headers)
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return WithHeaders(map[string]string{key: value})
}

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(o *RequestOptions) {
		if o.Query == nil {
			o.Query = make(map[string]string, len(params))
		}
		maps.Copy(o.Query, params)
	}
}

// WithPrepare sets the transport pass-through hook.
func WithPrepare(fn func(*http.Request)) RequestOption {
	return func(o *RequestOptions) {
		o.Prepare = fn
	}
}
