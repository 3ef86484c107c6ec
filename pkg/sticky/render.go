package sticky

import (
	"github.com/vango-dev/sticky/pkg/hooks"
	"github.com/vango-dev/sticky/pkg/vdom"
)

// TriggerHook is the client hook that observes trigger elements.
const TriggerHook = "StickyTrigger"

// Edge names a trigger.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Valid reports whether e is a known edge.
func (e Edge) Valid() bool {
	return e == EdgeTop || e == EdgeBottom
}

// Register records the trigger for edge. Unknown edges are ignored.
func (e *Element) Register(edge Edge, box Box) {
	switch edge {
	case EdgeTop:
		e.RegisterTopTrigger(box)
	case EdgeBottom:
		e.RegisterBottomTrigger(box)
	}
}

// Entered dispatches an enter event for edge.
func (e *Element) Entered(edge Edge) {
	switch edge {
	case EdgeTop:
		e.TopEntered()
	case EdgeBottom:
		e.BottomEntered()
	}
}

// Exited dispatches an exit event for edge.
func (e *Element) Exited(edge Edge) {
	switch edge {
	case EdgeTop:
		e.TopExited()
	case EdgeBottom:
		e.BottomExited()
	}
}

// Render builds the sticky container: the top trigger, the content wrapper
// carrying the state classes and native style, and the bottom trigger. Both
// triggers are always present so bottom sticking can be switched on after
// the page is served.
func (e *Element) Render(children ...any) *vdom.VNode {
	s := e.Snapshot()

	content := []any{
		vdom.Class(s.Class),
		vdom.StyleAttr(s.Style),
		vdom.Data("sticky-state", s.State.String()),
	}
	content = append(content, children...)

	return vdom.Div(vdom.Class(ContainerClass),
		trigger(EdgeTop, TopTriggerClass),
		vdom.Div(content...),
		trigger(EdgeBottom, BottomTriggerClass),
	)
}

func trigger(edge Edge, class string) *vdom.VNode {
	return vdom.Div(
		vdom.Class(TriggerClass, class),
		vdom.Data("sticky-edge", string(edge)),
		vdom.AriaHidden(true),
		hooks.Hook(TriggerHook, map[string]string{"edge": string(edge)}),
	)
}
