// Package server serves sticky elements to browsers.
//
// Every page load renders a sticky container on the server. The browser
// hook served at /client.js then opens a WebSocket to /ws, reports which
// position values its style engine accepts, and streams trigger geometry
// as the user scrolls. Each connection gets a Session that owns one
// sticky.Element and pushes state messages back whenever the derived
// state changes.
//
// # Threading
//
// A session runs three goroutines:
//
//   - ReadLoop decodes frames and queues events
//   - EventLoop applies events and config updates to the element
//   - WriteLoop sends keepalive pings
//
// Only EventLoop touches the element, so sticky.Element needs no locking.
//
// # Observability
//
// Sessions log through slog, record Prometheus metrics when a Metrics
// collector is configured, and open an OpenTelemetry span per event using
// the global tracer provider.
package server
