package reactive

import "reflect"

// signalBase provides subscriber management shared by Signal and Memo.
type signalBase struct {
	id   uint64
	rt   *Runtime
	subs []Listener
}

// subscribe adds a listener, deduplicated by ID.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}
	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener. Order of subs is not significant.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}
	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers tells every subscriber that the value changed.
// The slice is copied because listeners may resubscribe while notified.
func (s *signalBase) notifySubscribers() {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.rt.notify(subs)
}

// track subscribes the runtime's current listener, if any, to s.
func (s *signalBase) track() {
	listener := s.rt.currentListener()
	if listener == nil {
		return
	}
	s.subscribe(listener)
	if src, ok := listener.(sourceTracker); ok {
		src.addSource(s)
	}
}

// sourceTracker is implemented by listeners that unsubscribe from their
// sources before recomputing.
type sourceTracker interface {
	addSource(*signalBase)
}

// Signal is a reactive value container. Reading it inside a memo or effect
// subscribes that listener to later changes.
type Signal[T any] struct {
	base  signalBase
	value T
	equal func(T, T) bool
}

// NewSignal creates a signal in rt with the given initial value.
func NewSignal[T any](rt *Runtime, initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID(), rt: rt},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.base.track()
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores value and notifies subscribers if it differs from the old value.
// Each Set is its own batch, so effects run once the change has reached every
// memo.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.base.rt.Batch(s.base.notifySubscribers)
}

// Update replaces the value with fn(old).
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals configures a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable kinds and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
