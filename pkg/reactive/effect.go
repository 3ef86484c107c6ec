package reactive

// Effect runs a function immediately and again whenever a signal or memo it
// read during its last run changes.
type Effect struct {
	id       uint64
	rt       *Runtime
	fn       func() Cleanup
	cleanup  Cleanup
	sources  []*signalBase
	running  bool
	pending  bool
	disposed bool
}

// NewEffect creates and runs an effect in rt.
func NewEffect(rt *Runtime, fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		rt: rt,
		fn: fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. A change made by the effect's own body is
// picked up after the current run finishes.
func (e *Effect) MarkDirty() {
	if e.disposed {
		return
	}
	if e.running {
		e.pending = true
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Dispose stops the effect and runs its last cleanup.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.unsubscribeAll()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

func (e *Effect) addSource(source *signalBase) {
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) unsubscribeAll() {
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

func (e *Effect) run() {
	defer func() { e.running = false }()

	for {
		e.pending = false
		e.running = true

		if e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}
		e.unsubscribeAll()

		e.rt.WithListener(e, func() { e.cleanup = e.fn() })

		e.running = false
		if !e.pending || e.disposed {
			return
		}
	}
}

var _ sourceTracker = (*Effect)(nil)
