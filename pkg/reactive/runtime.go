package reactive

// Runtime holds the tracking state of one reactive graph: the listener that
// is currently collecting dependencies and the batch queue.
type Runtime struct {
	listener   Listener
	batchDepth int
	pending    []Listener
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// currentListener returns the listener collecting dependencies, or nil.
func (rt *Runtime) currentListener() Listener {
	return rt.listener
}

// setListener installs l as the tracking listener and returns the previous one.
func (rt *Runtime) setListener(l Listener) Listener {
	old := rt.listener
	rt.listener = l
	return old
}

// WithListener runs fn with l collecting the dependencies read inside it.
func (rt *Runtime) WithListener(l Listener, fn func()) {
	old := rt.setListener(l)
	defer rt.setListener(old)
	fn()
}

// Untracked runs fn without recording any reads as dependencies.
func (rt *Runtime) Untracked(fn func()) {
	rt.WithListener(nil, fn)
}

// Batch groups updates so that each affected listener is notified once,
// after the outermost batch returns.
//
//	rt.Batch(func() {
//	    parentTop.Set(PositionTop)
//	    parentBottom.Set(PositionIn)
//	})
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.flush()
		}
	}()
	fn()
}

// InBatch reports whether a batch is open.
func (rt *Runtime) InBatch() bool {
	return rt.batchDepth > 0
}

// notify delivers a change to listeners. Memos are invalidated on the spot
// so the whole derived graph is stale before anything observes it; other
// listeners are queued until the outermost batch completes.
func (rt *Runtime) notify(subs []Listener) {
	for _, sub := range subs {
		if inv, ok := sub.(invalidator); ok {
			inv.invalidate()
			continue
		}
		if rt.batchDepth > 0 {
			rt.pending = append(rt.pending, sub)
			continue
		}
		sub.MarkDirty()
	}
}

// invalidator is implemented by listeners that only drop cached state when
// notified and are therefore safe to notify eagerly.
type invalidator interface {
	invalidate()
}

// flush deduplicates and notifies the listeners queued during a batch.
// Listeners may queue more work while being notified, so it loops until the
// queue drains.
func (rt *Runtime) flush() {
	for len(rt.pending) > 0 {
		updates := rt.pending
		rt.pending = nil

		seen := make(map[uint64]bool, len(updates))
		for _, l := range updates {
			id := l.ID()
			if seen[id] {
				continue
			}
			seen[id] = true
			l.MarkDirty()
		}
	}
}
