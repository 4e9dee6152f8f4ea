package apiclient

import (
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/kbukum/tripclient/schema"
)

// Do performs a call and converts the decoded body to T. With a schema the
// result is the schema's validated value. Without one the decoded body is
// returned as-is when it already is a T, and otherwise re-decoded into T.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts *RequestOptions, s schema.Schema[T]) (T, error) {
	var out T
	_, err := c.execute(ctx, endpoint, opts, func(data any) error {
		v, err := parseAs(data, s)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func parseAs[T any](data any, s schema.Schema[T]) (T, error) {
	if s != nil {
		return s.Parse(data)
	}
	if data == nil {
		var zero T
		return zero, nil
	}
	return schema.Decode[T]().Parse(data)
}

// Get performs a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, endpoint string, s schema.Schema[T], opts ...RequestOption) (T, error) {
	return send(ctx, c, http.MethodGet, endpoint, nil, s, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, endpoint string, data any, s schema.Schema[T], opts ...RequestOption) (T, error) {
	return send(ctx, c, http.MethodPost, endpoint, data, s, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, endpoint string, data any, s schema.Schema[T], opts ...RequestOption) (T, error) {
	return send(ctx, c, http.MethodPut, endpoint, data, s, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, endpoint string, data any, s schema.Schema[T], opts ...RequestOption) (T, error) {
	return send(ctx, c, http.MethodPatch, endpoint, data, s, opts...)
}

// Delete performs a DELETE request and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, endpoint string, s schema.Schema[T], opts ...RequestOption) (T, error) {
	return send(ctx, c, http.MethodDelete, endpoint, nil, s, opts...)
}

// send builds RequestOptions for a wrapper call. nil data sends no body.
func send[T any](ctx context.Context, c *Client, method, endpoint string, data any, s schema.Schema[T], opts ...RequestOption) (T, error) {
	ro := &RequestOptions{Method: method}
	for _, opt := range opts {
		opt(ro)
	}
	if data != nil {
		body, err := json.Marshal(data)
		if err != nil {
			var zero T
			return zero, c.unexpected(c.log, fmt.Errorf("apiclient: encode body: %w", err))
		}
		ro.Body = body
	}
	return Do(ctx, c, endpoint, ro, s)
}

// Get performs an untyped GET request.
func (c *Client) Get(ctx context.Context, endpoint string, opts ...RequestOption) (any, error) {
	return Get[any](ctx, c, endpoint, nil, opts...)
}

// Post performs an untyped POST request.
func (c *Client) Post(ctx context.Context, endpoint string, data any, opts ...RequestOption) (any, error) {
	return Post[any](ctx, c, endpoint, data, nil, opts...)
}

// Put performs an untyped PUT request.
func (c *Client) Put(ctx context.Context, endpoint string, data any, opts ...RequestOption) (any, error) {
	return Put[any](ctx, c, endpoint, data, nil, opts...)
}

// Patch performs an untyped PATCH request.
func (c *Client) Patch(ctx context.Context, endpoint string, data any, opts ...RequestOption) (any, error) {
	return Patch[any](ctx, c, endpoint, data, nil, opts...)
}

// Delete performs an untyped DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, opts ...RequestOption) (any, error) {
	return Delete[any](ctx, c, endpoint, nil, opts...)
}
