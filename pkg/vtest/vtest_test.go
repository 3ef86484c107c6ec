package vtest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sticky/pkg/hooks"
	"github.com/vango-dev/sticky/pkg/vdom"
)

func TestRenderAssertions(t *testing.T) {
	node := vdom.Div(vdom.Class("box"), vdom.Data("state", "normal"), "hello")

	ExpectContains(t, node, "hello")
	ExpectNotContains(t, node, "goodbye")
	ExpectAttribute(t, node, "class", "box")
	ExpectAttribute(t, node, "data-state", "normal")
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}

// echoServer answers every hook event with a state message naming it.
func echoServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var ev hooks.HookEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			conn.WriteJSON(Message{
				Type:  "state",
				State: ev.Name,
				Style: ev.Object("viewport").String("height"),
			})
		}
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestClient(t *testing.T) {
	c := Dial(t, echoServer(t).URL)

	c.Hello([]string{"sticky"}, 600)
	m := c.Read()
	if m.State != "hello" || m.Style != "600" {
		t.Errorf("hello echo = %+v", m)
	}

	c.Register("top", 10, 1)
	c.Exit("top", -1, 1)
	m = c.ReadUntil(func(m Message) bool { return m.State == "exit" })
	if m.Type != "state" {
		t.Errorf("type = %q", m.Type)
	}

	c.Resize(300)
	m = c.Read()
	if m.State != "resize" || m.Style != "300" {
		t.Errorf("resize echo = %+v", m)
	}
}
