package reactive

import "testing"

// testListener counts notifications.
type testListener struct {
	id         uint64
	dirtyCount int
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() { l.dirtyCount++ }
func (l *testListener) ID() uint64 { return l.id }

func TestSignalBasic(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalSubscription(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	listener := newTestListener()

	rt.WithListener(listener, func() {
		_ = count.Get()
		_ = count.Get()
	})

	count.Set(1)
	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification, got %d", listener.dirtyCount)
	}

	// Same value should not notify
	count.Set(1)
	if listener.dirtyCount != 1 {
		t.Errorf("same value should not notify, got %d", listener.dirtyCount)
	}

	count.Set(2)
	if listener.dirtyCount != 2 {
		t.Errorf("expected 2 notifications, got %d", listener.dirtyCount)
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 42)
	listener := newTestListener()

	rt.WithListener(listener, func() {
		if v := count.Peek(); v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	})

	count.Set(100)
	if listener.dirtyCount != 0 {
		t.Errorf("Peek should not subscribe listener, got %d notifications", listener.dirtyCount)
	}
}

func TestSignalUntracked(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	listener := newTestListener()

	rt.WithListener(listener, func() {
		rt.Untracked(func() {
			_ = count.Get()
		})
	})

	count.Set(1)
	if listener.dirtyCount != 0 {
		t.Errorf("Untracked read should not subscribe, got %d notifications", listener.dirtyCount)
	}
}

func TestSignalCustomEquals(t *testing.T) {
	type offset struct {
		Value float64
		Set   bool
	}

	rt := NewRuntime()
	sig := NewSignal(rt, offset{}).WithEquals(func(a, b offset) bool {
		return a.Set == b.Set && (!a.Set || a.Value == b.Value)
	})
	listener := newTestListener()
	rt.WithListener(listener, func() { _ = sig.Get() })

	// Unset offsets are equal whatever their value
	sig.Set(offset{Value: 3})
	if listener.dirtyCount != 0 {
		t.Errorf("expected 0 notifications, got %d", listener.dirtyCount)
	}

	sig.Set(offset{Value: 3, Set: true})
	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification, got %d", listener.dirtyCount)
	}
}

func TestSignalPointerEquality(t *testing.T) {
	rt := NewRuntime()
	a, b := 5.0, 5.0
	sig := NewSignal[*float64](rt, &a)
	listener := newTestListener()
	rt.WithListener(listener, func() { _ = sig.Get() })

	// DeepEqual follows pointers
	sig.Set(&b)
	if listener.dirtyCount != 0 {
		t.Errorf("expected 0 notifications for equal pointees, got %d", listener.dirtyCount)
	}

	sig.Set(nil)
	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification, got %d", listener.dirtyCount)
	}
}

func TestMemoCaching(t *testing.T) {
	rt := NewRuntime()
	computations := 0
	count := NewSignal(rt, 5)

	doubled := NewMemo(rt, func() int {
		computations++
		return count.Get() * 2
	})

	if computations != 0 {
		t.Errorf("memo should be lazy, got %d computations", computations)
	}
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	count.Set(10)
	if doubled.Get() != 20 {
		t.Errorf("expected 20, got %d", doubled.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestMemoChain(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 2)
	doubled := NewMemo(rt, func() int { return count.Get() * 2 })
	quadrupled := NewMemo(rt, func() int { return doubled.Get() * 2 })

	if quadrupled.Get() != 8 {
		t.Errorf("expected 8, got %d", quadrupled.Get())
	}

	count.Set(3)
	if quadrupled.Get() != 12 {
		t.Errorf("expected 12, got %d", quadrupled.Get())
	}
}

func TestMemoDynamicDependencies(t *testing.T) {
	rt := NewRuntime()
	useA := NewSignal(rt, true)
	a := NewSignal(rt, "a")
	b := NewSignal(rt, "b")
	computations := 0

	pick := NewMemo(rt, func() string {
		computations++
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	if pick.Get() != "a" {
		t.Fatalf("expected a, got %s", pick.Get())
	}

	// b is not a dependency yet
	b.Set("b2")
	_ = pick.Get()
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	useA.Set(false)
	if pick.Get() != "b2" {
		t.Errorf("expected b2, got %s", pick.Get())
	}

	// a was dropped as a dependency
	a.Set("a2")
	_ = pick.Get()
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestMemoNoDependenciesComputesOnce(t *testing.T) {
	rt := NewRuntime()
	calls := 0
	once := NewMemo(rt, func() bool {
		calls++
		return true
	})

	for i := 0; i < 3; i++ {
		_ = once.Peek()
	}
	if calls != 1 {
		t.Errorf("expected 1 computation, got %d", calls)
	}
}

func TestEffectRunsOnChange(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	var seen []int

	NewEffect(rt, func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})

	count.Set(1)
	count.Set(2)

	want := []int{0, 1, 2}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("run %d: expected %d, got %d", i, want[i], seen[i])
		}
	}
}

func TestEffectThroughMemo(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 1)
	positive := NewMemo(rt, func() bool { return count.Get() > 0 })
	runs := 0

	NewEffect(rt, func() Cleanup {
		_ = positive.Get()
		runs++
		return nil
	})

	count.Set(-1)
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
	if positive.Peek() {
		t.Error("expected memo to be false")
	}
}

func TestEffectCleanupAndDispose(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	cleanups := 0
	runs := 0

	e := NewEffect(rt, func() Cleanup {
		_ = count.Get()
		runs++
		return func() { cleanups++ }
	})

	count.Set(1)
	if cleanups != 1 {
		t.Errorf("expected cleanup before re-run, got %d", cleanups)
	}

	e.Dispose()
	if cleanups != 2 {
		t.Errorf("expected cleanup on dispose, got %d", cleanups)
	}

	count.Set(2)
	if runs != 2 {
		t.Errorf("disposed effect should not run, got %d runs", runs)
	}
}

func TestEffectSelfWriteRerunsOnce(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	runs := 0

	NewEffect(rt, func() Cleanup {
		runs++
		if count.Get() < 3 {
			count.Set(count.Peek() + 1)
		}
		return nil
	})

	if count.Peek() != 3 {
		t.Errorf("expected 3, got %d", count.Peek())
	}
	if runs != 4 {
		t.Errorf("expected 4 runs, got %d", runs)
	}
}

func TestBatchDeduplicates(t *testing.T) {
	rt := NewRuntime()
	a := NewSignal(rt, 0)
	b := NewSignal(rt, 0)
	runs := 0

	NewEffect(rt, func() Cleanup {
		_ = a.Get() + b.Get()
		runs++
		return nil
	})

	rt.Batch(func() {
		a.Set(1)
		b.Set(2)
		if !rt.InBatch() {
			t.Error("expected InBatch inside Batch")
		}
	})

	if runs != 2 {
		t.Errorf("expected 2 runs (initial + one batched), got %d", runs)
	}
	if rt.InBatch() {
		t.Error("expected batch to be closed")
	}
}

func TestNestedBatch(t *testing.T) {
	rt := NewRuntime()
	a := NewSignal(rt, 0)
	listener := newTestListener()
	rt.WithListener(listener, func() { _ = a.Get() })

	rt.Batch(func() {
		rt.Batch(func() {
			a.Set(1)
		})
		if listener.dirtyCount != 0 {
			t.Errorf("inner batch should not flush, got %d", listener.dirtyCount)
		}
		a.Set(2)
	})

	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification, got %d", listener.dirtyCount)
	}
}

func TestEffectSeesConsistentMemos(t *testing.T) {
	rt := NewRuntime()
	n := NewSignal(rt, 1)
	// a is read first by the effect and also feeds b; c depends on n directly
	a := NewMemo(rt, func() int { return n.Get() * 2 })
	b := NewMemo(rt, func() int { return a.Get() + 1 })
	c := NewMemo(rt, func() int { return n.Get() * 10 })

	var glitches int
	NewEffect(rt, func() Cleanup {
		av, bv, cv := a.Get(), b.Get(), c.Get()
		if bv != av+1 || cv != av*5 {
			glitches++
		}
		return nil
	})

	for i := 2; i < 10; i++ {
		n.Set(i)
	}
	if glitches != 0 {
		t.Errorf("effect observed %d inconsistent states", glitches)
	}
}

func TestPanicRestoresListener(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 1)

	broken := NewMemo(rt, func() int {
		_ = count.Get()
		panic("compute failed")
	})
	func() {
		defer func() { _ = recover() }()
		broken.Get()
	}()
	if rt.currentListener() != nil {
		t.Fatal("memo panic left its listener installed")
	}

	func() {
		defer func() { _ = recover() }()
		NewEffect(rt, func() Cleanup {
			_ = count.Get()
			panic("effect failed")
		})
	}()
	if rt.currentListener() != nil {
		t.Fatal("effect panic left its listener installed")
	}

	other := NewSignal(rt, "a")
	runs := 0
	NewEffect(rt, func() Cleanup {
		runs++
		_ = other.Get()
		return nil
	})
	other.Set("b")
	if runs != 2 {
		t.Errorf("expected 2 runs after a recovered panic, got %d", runs)
	}
}
