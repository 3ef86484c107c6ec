package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/sticky/pkg/sticky"
	"github.com/vango-dev/sticky/pkg/vtest"
)

func newTestServer(t *testing.T, cfg sticky.Config, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(&ServerConfig{Title: "Demo", Sticky: cfg}, opts...)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t, sticky.Config{Top: 10, Enabled: true})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Demo</title>")
	assert.Contains(t, html, `class="sticky-element-container"`)
	assert.Contains(t, html, `data-sticky-state="normal"`)
	assert.Contains(t, html, "StickyTrigger:")
	assert.Contains(t, html, `src="/client.js"`)
	assert.Contains(t, html, "sticky-element__trigger--bottom")
	assert.Contains(t, html, "section{position:relative}", "bottom fallback anchors to the scrolling section")
	assert.NotContains(t, html, ".sticky-element-container{position:relative}")
}

func TestClientScript(t *testing.T) {
	_, ts := newTestServer(t, sticky.DefaultConfig())

	resp, err := http.Get(ts.URL + "/client.js")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "StickyTrigger")
}

func TestSessionStickyTop(t *testing.T) {
	_, ts := newTestServer(t, sticky.Config{Top: 10, Enabled: true})
	c := vtest.Dial(t, ts.URL)

	c.Hello([]string{"sticky"}, 800)
	m := c.Read()
	assert.Equal(t, MessageState, m.Type)
	assert.Equal(t, uint64(1), m.Seq)
	assert.Equal(t, "normal", m.State)
	assert.Equal(t, "position: sticky; top: 10px;", m.Style)

	c.Register("top", 50, 1)
	m = c.Read()
	assert.Equal(t, "in", m.ParentTop)
	assert.Equal(t, "normal", m.State)

	c.Exit("top", 5, 1)
	m = c.Read()
	assert.Equal(t, "top", m.ParentTop)
	assert.Equal(t, "sticky-top", m.State)
	assert.True(t, m.Sticky)
	assert.True(t, m.StickyTop)
	assert.False(t, m.StickyBottom)
	assert.Contains(t, m.Class, sticky.StickyTopClass)

	c.Enter("top")
	m = c.Read()
	assert.Equal(t, "normal", m.State)
	assert.Equal(t, sticky.ElementClass, m.Class)
}

func TestSessionStickyBottom(t *testing.T) {
	_, ts := newTestServer(t, sticky.Config{Bottom: sticky.Offset(5), Enabled: true})
	c := vtest.Dial(t, ts.URL)

	c.Hello(nil, 800)
	m := c.Read()
	assert.Equal(t, "sticky-bottom", m.State, "unmeasured bottom trigger sticks")
	assert.Empty(t, m.Style, "no accepted positions means no native style")

	c.Register("bottom", 900, 1)
	m = c.Read()
	assert.Equal(t, "bottom", m.ParentBottom)
	assert.Equal(t, "normal", m.State)

	c.Exit("bottom", 100, 1)
	m = c.Read()
	assert.Equal(t, "in", m.ParentBottom)
	assert.Equal(t, "sticky-bottom", m.State)
	assert.False(t, m.StickyTop)
}

func TestSessionResize(t *testing.T) {
	_, ts := newTestServer(t, sticky.Config{Bottom: sticky.Offset(0), Enabled: true})
	c := vtest.Dial(t, ts.URL)

	c.Hello(nil, 800)
	c.Read()

	c.Register("bottom", 700, 1)
	m := c.Read()
	assert.Equal(t, "in", m.ParentBottom)

	c.Resize(600)
	m = c.Read()
	assert.Equal(t, "bottom", m.ParentBottom)
	assert.Equal(t, "normal", m.State)
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  map[string]any
		code  string
	}{
		{"unknown event", "scroll", nil, "E201"},
		{"unknown edge", EventEnter, map[string]any{"edge": "left"}, "E202"},
		{"exit without rect", EventExit, map[string]any{"edge": "top"}, "E203"},
		{"register without rect", EventRegister, map[string]any{"edge": "bottom"}, "E203"},
		{"resize without viewport", EventResize, map[string]any{}, "E203"},
	}

	_, ts := newTestServer(t, sticky.DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := vtest.Dial(t, ts.URL)
			c.Send(tt.event, tt.data)

			m := c.ReadError()
			assert.Equal(t, tt.code, m.Code)
			assert.NotEmpty(t, m.Message)
		})
	}

	t.Run("invalid frame", func(t *testing.T) {
		c := vtest.Dial(t, ts.URL)
		c.SendRaw("not json")

		m := c.Read()
		assert.Equal(t, MessageError, m.Type)
		assert.Equal(t, "E200", m.Code)
	})
}

func TestConfigureLive(t *testing.T) {
	srv, ts := newTestServer(t, sticky.Config{Top: 10, Enabled: true})
	c := vtest.Dial(t, ts.URL)

	c.Hello([]string{"-webkit-sticky"}, 800)
	m := c.Read()
	require.Equal(t, "position: sticky; top: 10px;", m.Style)
	require.Equal(t, 1, srv.SessionCount())

	srv.Configure(sticky.Config{Top: 20, Bottom: sticky.Offset(3), Enabled: true})

	m = c.ReadUntil(func(m vtest.Message) bool { return m.Style != "position: sticky; top: 10px;" })
	assert.Equal(t, "position: sticky; top: 20px; bottom: 3;", m.Style)
	assert.Equal(t, 20.0, srv.StickyConfig().Top)

	srv.Configure(sticky.Config{Top: 20, Enabled: false})
	m = c.ReadUntil(func(m vtest.Message) bool { return m.Style == "" })
	assert.False(t, m.Sticky)
}

func TestSessionCount(t *testing.T) {
	srv, ts := newTestServer(t, sticky.DefaultConfig())
	c := vtest.Dial(t, ts.URL)

	c.Hello(nil, 800)
	c.Read()
	assert.Equal(t, 1, srv.SessionCount())

	c.Close()
	assert.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(WithRegistry(reg))
	_, ts := newTestServer(t, sticky.Config{Top: 10, Enabled: true}, WithMetrics(metrics))
	c := vtest.Dial(t, ts.URL)

	c.Hello(nil, 800)
	c.Read()
	c.Register("top", 50, 1)
	c.Read()
	c.Exit("top", 0, 1)
	m := c.Read()
	require.Equal(t, "sticky-top", m.State)
	c.Send("bogus", nil)
	c.ReadError()

	assert.Eventually(t, func() bool {
		return counterValue(t, metrics.eventsTotal.WithLabelValues(EventExit, "success")) == 1 &&
			counterValue(t, metrics.eventsTotal.WithLabelValues("unknown", "error")) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1.0, counterValue(t, metrics.transitions.WithLabelValues("sticky-top")))
	assert.Equal(t, 1.0, gaugeValue(t, metrics.activeSessions))

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sticky_active_sessions 1")
	assert.Contains(t, string(body), `sticky_state_transitions_total{state="sticky-top"} 1`)
}

func TestMetricsEndpointDisabled(t *testing.T) {
	_, ts := newTestServer(t, sticky.DefaultConfig())

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}
