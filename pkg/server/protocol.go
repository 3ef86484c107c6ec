package server

import (
	"github.com/vango-dev/sticky/internal/errors"
	"github.com/vango-dev/sticky/pkg/geom"
	"github.com/vango-dev/sticky/pkg/hooks"
	"github.com/vango-dev/sticky/pkg/sticky"
)

// Client events. Frames are JSON hook events: {"name": ..., "data": {...}}.
const (
	// EventHello opens a session. Data: positions ([]string), viewport.
	EventHello = "hello"

	// EventRegister mounts a trigger. Data: edge, rect, viewport.
	EventRegister = "register"

	// EventUnregister unmounts a trigger. Data: edge.
	EventUnregister = "unregister"

	// EventEnter reports a trigger entering the viewport. Data: edge,
	// optional rect and viewport.
	EventEnter = "enter"

	// EventExit reports a trigger leaving the viewport. Data: edge, rect,
	// viewport.
	EventExit = "exit"

	// EventResize reports a new viewport size. Data: viewport.
	EventResize = "resize"
)

// Server message types.
const (
	MessageState = "state"
	MessageError = "error"
)

// StateMessage carries an element snapshot to the client.
type StateMessage struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
	sticky.Snapshot
}

// ErrorMessage reports a rejected client frame.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newErrorMessage(err error) ErrorMessage {
	se := errors.FromError(err, "E200")
	msg := se.Message
	if se.Detail != "" {
		msg += ": " + se.Detail
	}
	return ErrorMessage{Type: MessageError, Code: se.Code, Message: msg}
}

// knownEvent maps arbitrary client names onto a bounded label set.
func knownEvent(name string) string {
	switch name {
	case EventHello, EventRegister, EventUnregister, EventEnter, EventExit, EventResize:
		return name
	default:
		return "unknown"
	}
}

func decodeEdge(ev hooks.HookEvent) (sticky.Edge, error) {
	edge := sticky.Edge(ev.String("edge"))
	if !edge.Valid() {
		return "", errors.New("E202").WithDetailf("edge %q", ev.String("edge"))
	}
	return edge, nil
}

// decodeRect reads {"x","y","width","height"} under "rect".
func decodeRect(ev hooks.HookEvent) (geom.Rect, bool) {
	if !ev.Has("rect") {
		return geom.Rect{}, false
	}
	r := ev.Object("rect")
	if !r.Has("y") || !r.Has("height") {
		return geom.Rect{}, false
	}
	return geom.NewRect(r.Float("x"), r.Float("y"), r.Float("width"), r.Float("height")), true
}

// decodeViewport reads {"width","height"} under "viewport".
func decodeViewport(ev hooks.HookEvent) (width, height float64, ok bool) {
	if !ev.Has("viewport") {
		return 0, 0, false
	}
	v := ev.Object("viewport")
	if !v.Has("height") {
		return 0, 0, false
	}
	return v.Float("width"), v.Float("height"), true
}
