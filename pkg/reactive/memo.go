package reactive

// Memo is a cached computation that tracks its dependencies. When a
// dependency changes the cached value is invalidated and recomputed on the
// next read.
//
// Memos are lazy and can themselves be read by other memos and effects.
type Memo[T any] struct {
	base      signalBase
	compute   func() T
	value     T
	valid     bool
	computing bool
	sources   []*signalBase
}

// NewMemo creates a memo in rt. compute does not run until the first read.
func NewMemo[T any](rt *Runtime, compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID(), rt: rt},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if necessary, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	m.base.track()
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// Peek returns the value without subscribing. It still recomputes a stale
// value.
func (m *Memo[T]) Peek() T {
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// MarkDirty invalidates the cached value and propagates to subscribers.
func (m *Memo[T]) MarkDirty() {
	if !m.valid {
		return
	}
	m.valid = false
	m.base.notifySubscribers()
}

func (m *Memo[T]) invalidate() {
	m.MarkDirty()
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

func (m *Memo[T]) addSource(source *signalBase) {
	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// recompute drops the old subscriptions and runs compute while tracking.
// A memo that reads itself keeps its previous value.
func (m *Memo[T]) recompute() {
	if m.computing {
		return
	}
	m.computing = true
	defer func() { m.computing = false }()

	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]

	var value T
	m.base.rt.WithListener(m, func() { value = m.compute() })

	m.value = value
	m.valid = true
}

var (
	_ sourceTracker = (*Memo[int])(nil)
	_ invalidator   = (*Memo[int])(nil)
)
