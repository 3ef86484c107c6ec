package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sticky/internal/errors"
	"github.com/vango-dev/sticky/pkg/geom"
	"github.com/vango-dev/sticky/pkg/hooks"
	"github.com/vango-dev/sticky/pkg/sticky"
)

// Session is one connected browser driving one sticky element.
type Session struct {
	// ID is a random UUID.
	ID string

	// CreatedAt is when the connection was accepted.
	CreatedAt time.Time

	conn    *websocket.Conn
	config  *ServerConfig
	metrics *Metrics
	tracer  trace.Tracer
	parent  trace.SpanContext
	logger  *slog.Logger

	// Owned by EventLoop.
	element   *sticky.Element
	stickyCfg sticky.Config
	view      *geom.Viewport
	boxes     map[sticky.Edge]*geom.Box
	unobserve func()
	seq       uint64
	lastState sticky.State

	events  chan hooks.HookEvent
	configs chan sticky.Config
	done    chan struct{}
	closed  atomic.Bool

	// Serializes writes to conn.
	mu sync.Mutex

	eventCount atomic.Uint64
}

func newSession(conn *websocket.Conn, config *ServerConfig, stickyCfg sticky.Config, metrics *Metrics, tracer trace.Tracer, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		config:    config,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger.With("session_id", id),
		stickyCfg: stickyCfg,
		view:      geom.NewViewport(0, 0),
		boxes:     make(map[sticky.Edge]*geom.Box),
		events:    make(chan hooks.HookEvent, config.MaxEventQueue),
		configs:   make(chan sticky.Config, 1),
		done:      make(chan struct{}),
	}
}

// ReadLoop reads frames until the connection fails or the session closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		ev, err := hooks.Decode(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(errors.New("E200").Wrap(err))
			continue
		}

		select {
		case s.events <- ev:
		case <-s.done:
			return
		default:
			s.sendError(errors.New("E204"))
		}
	}
}

// WriteLoop pings the client until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			if err != nil {
				s.logger.Debug("ping error", "error", err)
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// EventLoop applies client events and configuration updates in order.
func (s *Session) EventLoop() {
	defer s.teardown()

	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)

		case cfg := <-s.configs:
			s.reconfigure(cfg)

		case <-s.done:
			return
		}
	}
}

// Reconfigure queues a new element configuration. A pending update that has
// not been applied yet is replaced.
func (s *Session) Reconfigure(cfg sticky.Config) {
	for {
		select {
		case s.configs <- cfg:
			return
		case <-s.done:
			return
		default:
		}
		select {
		case <-s.configs:
		default:
		}
	}
}

func (s *Session) reconfigure(cfg sticky.Config) {
	s.stickyCfg = cfg
	if s.element != nil {
		s.element.Configure(cfg)
	}
	s.metrics.configReloaded()
	s.logger.Debug("reconfigured", "top", cfg.Top, "enabled", cfg.Enabled)
}

// handleEvent applies one client event inside a span.
func (s *Session) handleEvent(ev hooks.HookEvent) {
	s.eventCount.Add(1)
	start := time.Now()

	ctx := trace.ContextWithSpanContext(context.Background(), s.parent)
	_, span := s.tracer.Start(ctx, "sticky."+knownEvent(ev.Name),
		trace.WithAttributes(
			attribute.String("sticky.session_id", s.ID),
			attribute.String("sticky.event", ev.Name),
		))
	defer span.End()

	status := "success"
	if err := s.dispatch(ev); err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("event rejected", "event", ev.Name, "error", err)
		s.sendError(err)
	} else if s.element != nil {
		span.SetAttributes(attribute.String("sticky.state", s.element.State().String()))
	}

	s.metrics.observeEvent(knownEvent(ev.Name), status, time.Since(start))
}

func (s *Session) dispatch(ev hooks.HookEvent) error {
	if ev.Name == EventHello {
		return s.hello(ev)
	}

	switch ev.Name {
	case EventRegister, EventUnregister, EventEnter, EventExit, EventResize:
	default:
		return errors.New("E201").WithDetailf("event %q", ev.Name)
	}

	s.ensureElement(nil)

	if w, h, ok := decodeViewport(ev); ok {
		s.view.Resize(w, h)
	}

	if ev.Name == EventResize {
		if !ev.Has("viewport") {
			return errors.New("E203").WithDetail("resize requires a viewport")
		}
		s.element.UpdatePosition()
		return nil
	}

	edge, err := decodeEdge(ev)
	if err != nil {
		return err
	}
	rect, hasRect := decodeRect(ev)

	switch ev.Name {
	case EventRegister:
		if !hasRect {
			return errors.New("E203").WithDetailf("register %s", edge)
		}
		s.element.Register(edge, s.measure(edge, rect))

	case EventUnregister:
		delete(s.boxes, edge)
		s.element.Register(edge, nil)

	case EventEnter:
		if hasRect {
			s.measure(edge, rect)
		}
		s.element.Entered(edge)

	case EventExit:
		if !hasRect {
			return errors.New("E203").WithDetailf("exit %s", edge)
		}
		s.measure(edge, rect)
		s.element.Exited(edge)
	}
	return nil
}

// hello creates the element with a style engine built from the position
// values the browser accepted. A repeated hello is ignored.
func (s *Session) hello(ev hooks.HookEvent) error {
	if w, h, ok := decodeViewport(ev); ok {
		s.view.Resize(w, h)
	}
	if s.element != nil {
		s.logger.Debug("duplicate hello ignored")
		return nil
	}
	s.ensureElement(sticky.NewInlineStyleEngine(ev.Strings("positions")...))
	return nil
}

// ensureElement creates the element on first use. Without a hello there is
// no engine and the element never emits a native style.
func (s *Session) ensureElement(engine sticky.StyleEngine) {
	if s.element != nil {
		return
	}
	opts := []sticky.Option{sticky.WithLogger(s.logger)}
	if engine != nil {
		opts = append(opts, sticky.WithStyleEngine(engine))
	}
	s.element = sticky.New(s.view, s.stickyCfg, opts...)
	s.unobserve = s.element.Observe(s.publish)

	snap := s.element.Snapshot()
	s.lastState = snap.State
	s.sendState(snap)
}

// measure stores rect as the current geometry of edge's trigger.
func (s *Session) measure(edge sticky.Edge, rect geom.Rect) *geom.Box {
	box, ok := s.boxes[edge]
	if !ok {
		box = geom.NewBox(rect)
		s.boxes[edge] = box
		return box
	}
	box.Measure(rect)
	return box
}

func (s *Session) publish(snap sticky.Snapshot) {
	if snap.State != s.lastState {
		s.lastState = snap.State
		s.metrics.transition(snap.State.String())
	}
	s.sendState(snap)
}

func (s *Session) sendState(snap sticky.Snapshot) {
	s.seq++
	s.writeJSON(StateMessage{Type: MessageState, Seq: s.seq, Snapshot: snap})
}

func (s *Session) sendError(err error) {
	s.writeJSON(newErrorMessage(err))
}

func (s *Session) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode error", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() || s.conn == nil {
		return
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("write error", "error", err)
	}
}

// Close signals the loops to stop and closes the connection.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	if s.conn != nil {
		s.mu.Lock()
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
		s.mu.Unlock()
	}
}

// teardown releases the element. It runs on EventLoop.
func (s *Session) teardown() {
	if s.element != nil {
		s.unobserve()
		s.element.Close()
	}
	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"duration", time.Since(s.CreatedAt).Round(time.Millisecond))
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
