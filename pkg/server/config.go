package server

import (
	"net/http"
	"time"

	"github.com/vango-dev/sticky/pkg/sticky"
)

// ServerConfig configures the sticky server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":3000").
	Address string

	// Title is the demo page title.
	Title string

	// Sticky is the element configuration new sessions start with.
	Sticky sticky.Config

	// ReadTimeout bounds the wait for the next client frame. Pongs extend it.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration

	// PingInterval is how often WriteLoop pings the client.
	PingInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is passed to http.Server.
	ReadHeaderTimeout time.Duration

	// MaxEventQueue is the per-session event buffer.
	MaxEventQueue int

	// MetricsPath is where Prometheus metrics are served when a Metrics
	// collector is set. Empty disables the endpoint.
	MetricsPath string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the WebSocket Origin header.
	CheckOrigin func(r *http.Request) bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":3000",
		Title:             "Sticky",
		Sticky:            sticky.DefaultConfig(),
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      25 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxEventQueue:     64,
		MetricsPath:       "/metrics",
		ReadBufferSize:    1024,
		WriteBufferSize:   1024,
		CheckOrigin:       sameOrigin,
	}
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	if c == nil {
		return DefaultServerConfig()
	}
	cfg := *c
	defaults := DefaultServerConfig()
	if cfg.Address == "" {
		cfg.Address = defaults.Address
	}
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.PingInterval == 0 {
		cfg.PingInterval = defaults.PingInterval
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if cfg.MaxEventQueue == 0 {
		cfg.MaxEventQueue = defaults.MaxEventQueue
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = defaults.ReadBufferSize
	}
	if cfg.WriteBufferSize == 0 {
		cfg.WriteBufferSize = defaults.WriteBufferSize
	}
	if cfg.CheckOrigin == nil {
		cfg.CheckOrigin = defaults.CheckOrigin
	}
	return &cfg
}

// sameOrigin accepts requests without an Origin header and requests whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, scheme := range []string{"http://", "https://"} {
		if origin == scheme+r.Host {
			return true
		}
	}
	return false
}
