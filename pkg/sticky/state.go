package sticky

// State is the derived visual state of an Element.
type State uint8

const (
	StateNormal       State = iota // in normal flow
	StateStickyTop                 // pinned to the viewport top
	StateStickyBottom              // pinned to the container bottom
)

// String returns "normal", "sticky-top" or "sticky-bottom".
func (s State) String() string {
	switch s {
	case StateStickyTop:
		return "sticky-top"
	case StateStickyBottom:
		return "sticky-bottom"
	default:
		return "normal"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a consistent read of everything an Element derives.
type Snapshot struct {
	State        State    `json:"state"`
	Sticky       bool     `json:"sticky"`
	StickyTop    bool     `json:"stickyTop"`
	StickyBottom bool     `json:"stickyBottom"`
	ParentTop    Position `json:"parentTop"`
	ParentBottom Position `json:"parentBottom"`
	Class        string   `json:"class"`
	Style        string   `json:"style"`
}
