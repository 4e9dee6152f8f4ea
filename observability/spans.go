package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanAPIRequest is the name of the span wrapping one client call.
const SpanAPIRequest = "api.request"

// Attribute keys set on API request spans.
const (
	AttrHTTPMethod = "http.request.method"
	AttrURL        = "url.full"
	AttrEndpoint   = "api.endpoint"
	AttrStatusCode = "http.response.status_code"
	AttrErrorCode  = "api.error.code"
	AttrRequestID  = "request.id"
)

// StartRequestSpan starts a client span for an API call.
func StartRequestSpan(ctx context.Context, tracer trace.Tracer, method, endpoint, url, requestID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanAPIRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrHTTPMethod, method),
			attribute.String(AttrEndpoint, endpoint),
			attribute.String(AttrURL, url),
			attribute.String(AttrRequestID, requestID),
		),
	)
}

// EndRequestSpan records the outcome on span and ends it. status is 0 when no
// response was obtained; errCode is empty on success.
func EndRequestSpan(span trace.Span, status int, errCode string, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int(AttrStatusCode, status))
	}
	if err != nil {
		span.SetAttributes(attribute.String(AttrErrorCode, errCode))
		span.RecordError(err)
		span.SetStatus(codes.Error, errCode)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
