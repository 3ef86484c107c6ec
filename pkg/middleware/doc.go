// Package middleware provides HTTP middleware for the sticky server.
//
// OpenTelemetry opens a server span per request, named after the matched
// chi route pattern. Logger writes one slog record per request. Both wrap
// the response writer with chi's WrapResponseWriter, which keeps the
// Hijacker needed for WebSocket upgrades.
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("sticky")))
//	r.Use(middleware.Logger(slog.Default()))
package middleware
