package sticky

import (
	"log/slog"

	"github.com/vango-dev/sticky/pkg/reactive"
)

// Config is the user-facing configuration of an Element.
type Config struct {
	// Top is the offset from the viewport top at which the element starts
	// sticking.
	Top float64 `json:"top" yaml:"top"`

	// Bottom is the offset from the container's bottom edge at which the
	// element sticks to the bottom. Nil disables bottom sticking.
	Bottom *float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`

	// Enabled turns sticky behaviour on and off.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// DefaultConfig returns Top 0, no bottom sticking, enabled.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// Offset returns a pointer to v, for Config.Bottom literals.
func Offset(v float64) *float64 {
	return &v
}

// copyOffset detaches an offset from the caller's variable.
func copyOffset(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Offset(*v)
}

// Option configures an Element.
type Option func(*Element)

// WithStyleEngine sets the engine used for native support detection.
// Without one the element never emits a native style.
func WithStyleEngine(engine StyleEngine) Option {
	return func(e *Element) {
		e.engine = engine
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Element) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Element is the sticky state machine for one piece of content.
//
// Configuration and trigger positions are reactive signals; every derived
// value is a memo recomputed from them on read. An Element is not safe for
// concurrent use.
type Element struct {
	rt     *reactive.Runtime
	view   Viewport
	engine StyleEngine
	logger *slog.Logger

	top          *reactive.Signal[float64]
	bottom       *reactive.Signal[*float64]
	enabled      *reactive.Signal[bool]
	parentTop    *reactive.Signal[Position]
	parentBottom *reactive.Signal[Position]

	topTrigger    Box
	bottomTrigger Box

	stickToBottom    *reactive.Memo[bool]
	isStickyBottom   *reactive.Memo[bool]
	isStickyTop      *reactive.Memo[bool]
	isSticky         *reactive.Memo[bool]
	hasNativeSupport *reactive.Memo[bool]
	style            *reactive.Memo[string]
	snapshot         *reactive.Memo[Snapshot]

	watcher   *reactive.Effect
	last      Snapshot
	observers map[int]func(Snapshot)
	nextObs   int
}

// New creates an Element measuring its triggers against view.
func New(view Viewport, cfg Config, opts ...Option) *Element {
	if view == nil {
		panic("sticky: nil viewport")
	}

	rt := reactive.NewRuntime()
	e := &Element{
		rt:           rt,
		view:         view,
		logger:       slog.Default().With("component", "sticky"),
		top:          reactive.NewSignal(rt, cfg.Top),
		bottom:       reactive.NewSignal(rt, copyOffset(cfg.Bottom)),
		enabled:      reactive.NewSignal(rt, cfg.Enabled),
		parentTop:    reactive.NewSignal(rt, PositionUnknown),
		parentBottom: reactive.NewSignal(rt, PositionUnknown),
		observers:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.stickToBottom = reactive.NewMemo(rt, func() bool {
		return e.bottom.Get() != nil
	})
	e.isStickyBottom = reactive.NewMemo(rt, func() bool {
		return e.enabled.Get() && e.parentBottom.Get() != PositionBottom && e.stickToBottom.Get()
	})
	e.isStickyTop = reactive.NewMemo(rt, func() bool {
		return e.enabled.Get() && e.parentTop.Get() == PositionTop && !e.isStickyBottom.Get()
	})
	e.isSticky = reactive.NewMemo(rt, func() bool {
		return e.isStickyTop.Get() || e.isStickyBottom.Get()
	})
	// No reactive dependencies: detection runs once.
	e.hasNativeSupport = reactive.NewMemo(rt, func() bool {
		return DetectNativeSupport(e.engine)
	})
	e.style = reactive.NewMemo(rt, func() string {
		if !e.enabled.Get() || !e.hasNativeSupport.Get() {
			return ""
		}
		return nativeStyle(e.top.Get(), e.bottom.Get())
	})
	e.snapshot = reactive.NewMemo(rt, func() Snapshot {
		s := Snapshot{
			Sticky:       e.isSticky.Get(),
			StickyTop:    e.isStickyTop.Get(),
			StickyBottom: e.isStickyBottom.Get(),
			ParentTop:    e.parentTop.Get(),
			ParentBottom: e.parentBottom.Get(),
			Style:        e.style.Get(),
		}
		switch {
		case s.StickyBottom:
			s.State = StateStickyBottom
		case s.StickyTop:
			s.State = StateStickyTop
		}
		s.Class = classList(s.Sticky, s.StickyTop, s.StickyBottom)
		return s
	})

	e.last = e.snapshot.Peek()
	e.watcher = reactive.NewEffect(rt, func() reactive.Cleanup {
		e.publish(e.snapshot.Get())
		return nil
	})

	return e
}

// publish logs state transitions and delivers changed snapshots to observers.
func (e *Element) publish(s Snapshot) {
	if s == e.last {
		return
	}
	prev := e.last
	e.last = s

	if prev.State != s.State {
		e.logger.Debug("state changed",
			"from", prev.State.String(),
			"to", s.State.String(),
			"parent_top", s.ParentTop.String(),
			"parent_bottom", s.ParentBottom.String())
	}
	for _, fn := range e.observers {
		fn(s)
	}
}

// Observe registers fn to be called with every new snapshot. The returned
// function removes it.
func (e *Element) Observe(fn func(Snapshot)) (cancel func()) {
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	return func() { delete(e.observers, id) }
}

// Close stops change delivery. The element can still be read.
func (e *Element) Close() {
	e.watcher.Dispose()
	e.observers = make(map[int]func(Snapshot))
}

// Configuration

// Config returns the current configuration.
func (e *Element) Config() Config {
	return Config{
		Top:     e.top.Peek(),
		Bottom:  copyOffset(e.bottom.Peek()),
		Enabled: e.enabled.Peek(),
	}
}

// Configure replaces the whole configuration as one change.
func (e *Element) Configure(cfg Config) {
	e.rt.Batch(func() {
		e.top.Set(cfg.Top)
		e.setBottom(cfg.Bottom)
		e.enabled.Set(cfg.Enabled)
	})
}

// SetTop sets the top offset.
func (e *Element) SetTop(top float64) {
	e.top.Set(top)
}

// SetBottom sets the bottom offset; nil disables bottom sticking.
func (e *Element) SetBottom(bottom *float64) {
	e.rt.Batch(func() { e.setBottom(bottom) })
}

// setBottom stores the offset. When bottom sticking turns on, a registered
// bottom trigger is classified again, since it was last measured without
// an offset.
func (e *Element) setBottom(bottom *float64) {
	wasOff := e.bottom.Peek() == nil
	e.bottom.Set(copyOffset(bottom))
	if wasOff && bottom != nil && e.bottomTrigger != nil {
		e.parentBottom.Set(Classify(e.bottomTrigger, e.view, 0, *bottom))
	}
}

// SetEnabled turns sticky behaviour on or off.
func (e *Element) SetEnabled(enabled bool) {
	e.enabled.Set(enabled)
}

// Triggers

// RegisterTopTrigger records the top trigger and recomputes positions.
// Passing nil deregisters it.
func (e *Element) RegisterTopTrigger(box Box) {
	e.topTrigger = box
	e.UpdatePosition()
}

// RegisterBottomTrigger records the bottom trigger and recomputes positions.
// Passing nil deregisters it.
func (e *Element) RegisterBottomTrigger(box Box) {
	e.bottomTrigger = box
	e.UpdatePosition()
}

// TopEntered records that the top trigger entered the viewport.
func (e *Element) TopEntered() {
	e.parentTop.Set(PositionIn)
}

// TopExited recomputes positions after the top trigger left the viewport.
func (e *Element) TopExited() {
	e.UpdatePosition()
}

// BottomEntered records that the bottom trigger entered the viewport.
func (e *Element) BottomEntered() {
	e.parentBottom.Set(PositionIn)
}

// BottomExited recomputes positions after the bottom trigger left the
// viewport.
func (e *Element) BottomExited() {
	e.UpdatePosition()
}

// UpdatePosition classifies every registered trigger. The top trigger is
// measured against the top offset and the bottom trigger against the bottom
// offset (0 when bottom sticking is off).
func (e *Element) UpdatePosition() {
	e.rt.Batch(func() {
		if e.topTrigger != nil {
			e.parentTop.Set(Classify(e.topTrigger, e.view, e.top.Peek(), 0))
		}
		if e.bottomTrigger != nil {
			e.parentBottom.Set(Classify(e.bottomTrigger, e.view, 0, e.bottomOffset()))
		}
	})
}

func (e *Element) bottomOffset() float64 {
	if b := e.bottom.Peek(); b != nil {
		return *b
	}
	return 0
}

// Batch applies several trigger events as one change, so observers see only
// the final state.
func (e *Element) Batch(fn func()) {
	e.rt.Batch(fn)
}

// Derived state

// ParentTop returns the last known position of the top trigger.
func (e *Element) ParentTop() Position { return e.parentTop.Peek() }

// ParentBottom returns the last known position of the bottom trigger.
func (e *Element) ParentBottom() Position { return e.parentBottom.Peek() }

// StickToBottom reports whether bottom sticking is configured.
func (e *Element) StickToBottom() bool { return e.stickToBottom.Peek() }

// IsStickyTop reports whether the element is pinned to the viewport top.
func (e *Element) IsStickyTop() bool { return e.isStickyTop.Peek() }

// IsStickyBottom reports whether the element is pinned to the container
// bottom.
func (e *Element) IsStickyBottom() bool { return e.isStickyBottom.Peek() }

// IsSticky reports whether the element is pinned either way.
func (e *Element) IsSticky() bool { return e.isSticky.Peek() }

// HasNativeSupport reports whether the style engine supports sticky
// positioning. Detection runs at most once per Element.
func (e *Element) HasNativeSupport() bool { return e.hasNativeSupport.Peek() }

// NativeStyle returns the sticky CSS declaration, or "" when the element is
// disabled or the engine has no native support.
func (e *Element) NativeStyle() string { return e.style.Peek() }

// State returns the derived visual state.
func (e *Element) State() State { return e.snapshot.Peek().State }

// Snapshot returns all derived values.
func (e *Element) Snapshot() Snapshot { return e.snapshot.Peek() }
