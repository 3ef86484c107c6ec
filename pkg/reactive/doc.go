// Package reactive provides the dependency-tracked state used by sticky
// components.
//
// A Runtime scopes one component's reactive graph. Signals hold values, memos
// cache values derived from signals and other memos, and effects run side
// effects whenever something they read changes:
//
//	rt := reactive.NewRuntime()
//	top := reactive.NewSignal(rt, 0.0)
//	pinned := reactive.NewMemo(rt, func() bool { return top.Get() < 0 })
//	reactive.NewEffect(rt, func() reactive.Cleanup {
//	    fmt.Println("pinned:", pinned.Get())
//	    return nil
//	})
//
// # Batching
//
// Updates made inside Batch are deduplicated and delivered once when the
// outermost batch completes:
//
//	rt.Batch(func() {
//	    top.Set(10)
//	    bottom.Set(5)
//	})
//
// # Thread Safety
//
// A Runtime is not safe for concurrent use. Every read and write of the
// primitives it owns must happen on one goroutine at a time; callers that
// receive input from several goroutines funnel it through a single loop.
package reactive
