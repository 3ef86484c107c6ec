// Package sticky keeps an element pinned to the top of the viewport while its
// container scrolls past, and optionally pins it to the bottom edge of the
// container instead.
//
// Two invisible trigger elements bracket the sticky content. The client
// observes them and reports when each one enters or leaves the viewport; the
// Element classifies the trigger geometry and derives its state:
//
//	el := sticky.New(viewport, sticky.Config{Top: 10, Enabled: true},
//	    sticky.WithStyleEngine(sticky.NewInlineStyleEngine("sticky")),
//	)
//	el.RegisterTopTrigger(topBox)
//	el.TopExited()
//	el.IsStickyTop()  // true once the top trigger scrolled above the offset
//	el.NativeStyle()  // "position: sticky; top: 10px;"
//
// # States
//
// An element is stuck to the bottom when bottom sticking is configured and
// the bottom trigger has not dropped below the viewport. It is stuck to the
// top when the top trigger has scrolled above the top offset and it is not
// stuck to the bottom. Otherwise it is in normal flow. The two stuck states
// never hold at the same time.
//
// # Native support
//
// When the rendering engine supports position: sticky the element emits a
// CSS declaration and lets the engine do the work. Without support the style
// is empty and the state classes on the rendered element drive positioning.
package sticky
