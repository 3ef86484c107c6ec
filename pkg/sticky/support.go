package sticky

import "strings"

// StyleEngine is the rendering engine capability used for feature
// detection: it creates detached elements whose inline style can be written
// and read back after the engine resolves it.
type StyleEngine interface {
	CreateElement(tag string) StyleDeclaration
}

// StyleDeclaration is the inline style of a detached element.
type StyleDeclaration interface {
	// SetCSSText replaces the inline style with the given declarations.
	SetCSSText(text string)

	// PropertyValue returns the resolved value of a property, or "".
	PropertyValue(name string) string
}

// stickyPrefixes are tried in order; the engine keeps the last one it accepts.
var stickyPrefixes = []string{"", "-webkit-", "-moz-", "-o-", "-ms-"}

// DetectNativeSupport reports whether engine accepts position: sticky under
// any vendor prefix. A nil engine has no support.
func DetectNativeSupport(engine StyleEngine) bool {
	if engine == nil {
		return false
	}

	var css strings.Builder
	for _, prefix := range stickyPrefixes {
		css.WriteString("position:")
		css.WriteString(prefix)
		css.WriteString("sticky;")
	}

	el := engine.CreateElement("a")
	el.SetCSSText(css.String())
	return strings.Contains(el.PropertyValue("position"), "sticky")
}

// basePositions are the position values every engine resolves.
var basePositions = []string{"static", "relative", "absolute", "fixed"}

// InlineStyleEngine resolves inline declarations the way a browser does for
// element.style: declarations with values the engine does not understand are
// dropped and later declarations of the same property win.
//
// Only the position property is validated. The accepted sticky spellings are
// those the engine was created with, which the server learns from the
// client's own probe.
type InlineStyleEngine struct {
	positions map[string]bool
}

// NewInlineStyleEngine creates an engine that accepts the standard position
// keywords plus the given extra values (e.g. "sticky", "-webkit-sticky").
func NewInlineStyleEngine(positions ...string) *InlineStyleEngine {
	e := &InlineStyleEngine{positions: make(map[string]bool)}
	for _, p := range basePositions {
		e.positions[p] = true
	}
	for _, p := range positions {
		e.positions[strings.ToLower(strings.TrimSpace(p))] = true
	}
	return e
}

// CreateElement implements StyleEngine. The tag is irrelevant to inline
// style resolution.
func (e *InlineStyleEngine) CreateElement(tag string) StyleDeclaration {
	return &inlineStyle{engine: e, values: make(map[string]string)}
}

func (e *InlineStyleEngine) accepts(property, value string) bool {
	if property == "position" {
		return e.positions[value]
	}
	return value != ""
}

type inlineStyle struct {
	engine *InlineStyleEngine
	values map[string]string
}

func (s *inlineStyle) SetCSSText(text string) {
	s.values = make(map[string]string)
	for _, decl := range strings.Split(text, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.ToLower(strings.TrimSpace(value))
		if prop == "" || !s.engine.accepts(prop, value) {
			continue
		}
		s.values[prop] = value
	}
}

func (s *inlineStyle) PropertyValue(name string) string {
	return s.values[strings.ToLower(name)]
}
