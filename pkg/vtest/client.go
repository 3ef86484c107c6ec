package vtest

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sticky/pkg/hooks"
)

// ReadTimeout bounds every Client read.
var ReadTimeout = 5 * time.Second

// Message is the union of the server's outgoing frames.
type Message struct {
	Type         string `json:"type"`
	Seq          uint64 `json:"seq"`
	State        string `json:"state"`
	Sticky       bool   `json:"sticky"`
	StickyTop    bool   `json:"stickyTop"`
	StickyBottom bool   `json:"stickyBottom"`
	ParentTop    string `json:"parentTop"`
	ParentBottom string `json:"parentBottom"`
	Class        string `json:"class"`
	Style        string `json:"style"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

// Client is a scripted browser hook.
type Client struct {
	t    *testing.T
	conn *websocket.Conn

	// ViewportHeight is sent with geometry events.
	ViewportHeight float64
}

// Dial connects to the /ws endpoint of the server at baseURL. The
// connection is closed when the test ends.
func Dial(t *testing.T, baseURL string) *Client {
	t.Helper()
	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return &Client{t: t, conn: conn, ViewportHeight: 800}
}

// Send writes a hook event.
func (c *Client) Send(name string, data map[string]any) {
	c.t.Helper()
	if err := c.conn.WriteJSON(hooks.HookEvent{Name: name, Data: data}); err != nil {
		c.t.Fatalf("send %s: %v", name, err)
	}
}

// SendRaw writes a text frame as is.
func (c *Client) SendRaw(frame string) {
	c.t.Helper()
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		c.t.Fatalf("send raw: %v", err)
	}
}

// Hello reports the accepted position values and the viewport height.
func (c *Client) Hello(positions []string, viewportHeight float64) {
	c.t.Helper()
	c.ViewportHeight = viewportHeight
	c.Send("hello", map[string]any{
		"positions": positions,
		"viewport":  c.viewport(),
	})
}

// Register mounts the trigger for edge at y with the given height.
func (c *Client) Register(edge string, y, height float64) {
	c.t.Helper()
	c.Send("register", c.geometry(edge, y, height))
}

// Unregister unmounts the trigger for edge.
func (c *Client) Unregister(edge string) {
	c.t.Helper()
	c.Send("unregister", map[string]any{"edge": edge})
}

// Enter reports the trigger for edge entering the viewport.
func (c *Client) Enter(edge string) {
	c.t.Helper()
	c.Send("enter", map[string]any{"edge": edge})
}

// Exit reports the trigger for edge leaving the viewport at y.
func (c *Client) Exit(edge string, y, height float64) {
	c.t.Helper()
	c.Send("exit", c.geometry(edge, y, height))
}

// Resize reports a new viewport height.
func (c *Client) Resize(viewportHeight float64) {
	c.t.Helper()
	c.ViewportHeight = viewportHeight
	c.Send("resize", map[string]any{"viewport": c.viewport()})
}

// Read returns the next server message.
func (c *Client) Read() Message {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	var m Message
	if err := c.conn.ReadJSON(&m); err != nil {
		c.t.Fatalf("read: %v", err)
	}
	return m
}

// ReadUntil reads until match accepts a message, failing after 20 messages.
func (c *Client) ReadUntil(match func(Message) bool) Message {
	c.t.Helper()
	for i := 0; i < 20; i++ {
		if m := c.Read(); match(m) {
			return m
		}
	}
	c.t.Fatal("expected message never arrived")
	return Message{}
}

// ReadError reads until an error message arrives.
func (c *Client) ReadError() Message {
	c.t.Helper()
	return c.ReadUntil(func(m Message) bool { return m.Type == "error" })
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) viewport() map[string]any {
	return map[string]any{"width": 1024, "height": c.ViewportHeight}
}

func (c *Client) geometry(edge string, y, height float64) map[string]any {
	return map[string]any{
		"edge":     edge,
		"rect":     map[string]any{"x": 0, "y": y, "width": 100, "height": height},
		"viewport": c.viewport(),
	}
}
