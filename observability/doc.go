// Package observability provides OpenTelemetry tracing for tripclient.
//
// The API client opens one client span per request through StartRequestSpan
// and closes it with EndRequestSpan. Without InitTracer the global no-op
// provider is used and spans cost nothing.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("tripctl"))
//	defer tp.Shutdown(ctx)
package observability
