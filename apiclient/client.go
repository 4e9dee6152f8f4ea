package apiclient

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apierrors "github.com/kbukum/tripclient/errors"
	"github.com/kbukum/tripclient/logger"
	"github.com/kbukum/tripclient/observability"
	"github.com/kbukum/tripclient/schema"
)

const maxLoggedBody = 2048

// networkSignatures are error texts that identify a failed connection when
// the transport does not return a typed net error.
var networkSignatures = []string{
	"failed to fetch",
	"network error",
	"network request failed",
}

// Client issues requests against one backend base URL.
type Client struct {
	config     Config
	doer       Doer
	normalizer *Normalizer
	log        *logger.Logger
	tracer     trace.Tracer

	mu            sync.RWMutex
	tokenProvider TokenProvider
}

// New creates a new API client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		log:    logger.Nop(),
		tracer: otel.Tracer(observability.TracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		hc, err := newHTTPClient(cfg)
		if err != nil {
			return nil, err
		}
		c.doer = hc
	}
	c.log = c.log.WithComponent("apiclient")
	c.normalizer = NewNormalizer(cfg.ExposeRawErrorText, cfg.MessageRules...)

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// SetTokenProvider registers the bearer token source, replacing any previous
// one. A nil provider disables token injection.
func (c *Client) SetTokenProvider(p TokenProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenProvider = p
}

func (c *Client) provider() TokenProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokenProvider
}

// Request performs a call and returns the decoded body without schema
// validation: JSON bodies as map[string]any, []any, string, float64, bool or
// nil; other bodies as string.
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions) (any, error) {
	return c.execute(ctx, endpoint, opts, nil)
}

// execute runs the pipeline. parse, when non-nil, receives the decoded body.
func (c *Client) execute(ctx context.Context, endpoint string, opts *RequestOptions, parse func(any) error) (any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.method()
	target := c.config.BaseURL + endpoint
	requestID := uuid.NewString()
	log := c.log.WithRequestID(requestID)

	ctx, span := observability.StartRequestSpan(ctx, c.tracer, method, endpoint, target, requestID)
	start := time.Now()

	data, status, err := c.roundTrip(ctx, log, method, endpoint, target, requestID, opts)
	if err == nil && parse != nil {
		err = c.parseFailure(log, parse(data))
	}
	if err != nil {
		err = c.unexpected(log, err)
	}

	observability.EndRequestSpan(span, status, string(apierrors.CodeOf(err)), err)
	fields := logger.DurationFields("request", time.Since(start))
	fields[logger.FieldMethod] = method
	fields[logger.FieldEndpoint] = endpoint
	fields[logger.FieldStatus] = status
	if err != nil {
		fields[logger.FieldCode] = apierrors.CodeOf(err)
		log.Debug("request failed", fields)
		return nil, err
	}
	log.Debug("request completed", fields)
	return data, nil
}

// roundTrip sends the request and decodes the success body. The returned
// status is 0 when no response was obtained.
func (c *Client) roundTrip(ctx context.Context, log *logger.Logger, method, endpoint, target, requestID string, opts *RequestOptions) (any, int, error) {
	if endpoint == "" {
		return nil, 0, fmt.Errorf("apiclient: endpoint is required")
	}

	req, err := c.buildRequest(ctx, method, target, requestID, opts)
	if err != nil {
		return nil, 0, err
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, 0, err
	}
	if opts.Prepare != nil {
		opts.Prepare(req)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	failed := resp.StatusCode < 200 || resp.StatusCode >= 300
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if !failed {
			return nil, resp.StatusCode, apierrors.Network(fmt.Errorf("read response body: %w", err))
		}
		log.WithError(err).Warn("unreadable error body", logger.Fields(
			logger.FieldEndpoint, endpoint,
			logger.FieldStatus, resp.StatusCode,
		))
		body = nil
	}

	if failed {
		apiErr := c.normalizer.Normalize(resp.StatusCode, body)
		log.Warn("error response", logger.Fields(
			logger.FieldEndpoint, endpoint,
			logger.FieldStatus, resp.StatusCode,
			logger.FieldCode, apiErr.Code,
			logger.FieldBody, truncate(body),
		))
		return nil, resp.StatusCode, apiErr
	}

	data, err := decodeBody(resp.Header.Get("Content-Type"), body)
	if err != nil {
		log.WithError(err).Warn("undecodable success body", logger.Fields(
			logger.FieldEndpoint, endpoint,
			logger.FieldBody, truncate(body),
		))
		return nil, resp.StatusCode, apierrors.InvalidFormat(err)
	}
	return data, resp.StatusCode, nil
}

// buildRequest constructs an *http.Request with merged headers.
func (c *Client) buildRequest(ctx context.Context, method, target, requestID string, opts *RequestOptions) (*http.Request, error) {
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: create request: %w", err)
	}

	if len(opts.Query) > 0 {
		q := req.URL.Query()
		for k, v := range opts.Query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.RequestIDHeader != "" {
		req.Header.Set(c.config.RequestIDHeader, requestID)
	}
	for k, v := range c.config.DefaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// authorize injects the bearer token unless an Authorization header is
// already present. The provider is called at most once.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if req.Header.Get("Authorization") != "" {
		return nil
	}
	p := c.provider()
	if p == nil {
		return nil
	}
	token, err := p(ctx)
	if err != nil {
		return fmt.Errorf("apiclient: token provider: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// parseFailure classifies an error returned by a schema.
func (c *Client) parseFailure(log *logger.Logger, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := schema.AsValidationError(err); ok {
		issues := make([]string, len(ve.Issues))
		for i, issue := range ve.Issues {
			issues[i] = issue.String()
		}
		log.Warn("response failed schema validation", logger.Fields(logger.FieldIssues, issues))
		return apierrors.InvalidResponse(err)
	}
	return err
}

// unexpected passes APIErrors through and wraps anything else as
// UNKNOWN_ERROR, logging the original.
func (c *Client) unexpected(log *logger.Logger, err error) error {
	if apiErr, ok := apierrors.As(err); ok {
		return apiErr
	}
	log.Error("unexpected request failure", logger.ErrorFields("request", err))
	return apierrors.Unknown(err)
}

// classifyTransportError maps a failed Do call. Errors that do not look like
// network failures are returned unchanged for the caller to wrap.
func classifyTransportError(err error) error {
	if apiErr, ok := apierrors.As(err); ok {
		return apiErr
	}
	if isNetworkError(err) {
		return apierrors.Network(err)
	}
	return err
}

func isNetworkError(err error) bool {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range networkSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// decodeBody chooses JSON or text decoding from the content type. Empty
// bodies decode to nil.
func decodeBody(contentType string, body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if !isJSONContent(contentType) {
		return string(body), nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
