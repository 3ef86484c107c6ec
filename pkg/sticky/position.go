package sticky

import (
	"fmt"

	"github.com/vango-dev/sticky/pkg/geom"
)

// Position is where a trigger element sits relative to the viewport.
type Position uint8

const (
	// PositionUnknown means the trigger has not been measured yet.
	PositionUnknown Position = iota

	// PositionTop means the trigger is above the top offset line.
	PositionTop

	// PositionIn means the trigger fits inside the viewport.
	PositionIn

	// PositionBottom means the trigger extends below the viewport.
	PositionBottom
)

// String returns "top", "in", "bottom" or "unknown".
func (p Position) String() string {
	switch p {
	case PositionTop:
		return "top"
	case PositionIn:
		return "in"
	case PositionBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	v, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "top":
		return PositionTop, nil
	case "in":
		return PositionIn, nil
	case "bottom":
		return PositionBottom, nil
	case "unknown", "":
		return PositionUnknown, nil
	}
	return PositionUnknown, fmt.Errorf("sticky: unknown position %q", s)
}

// Box is a laid-out element whose bounding rectangle can be read.
type Box interface {
	BoundingClientRect() geom.Rect
}

// Viewport is the visible area the triggers are measured against.
type Viewport interface {
	InnerHeight() float64
}

// Classify reports where box sits relative to view.
//
// The box is PositionTop when its top edge, less topOffset, is above the
// viewport. Otherwise it is PositionIn when its bottom edge, plus
// bottomOffset, is within the viewport height, and PositionBottom when not.
func Classify(box Box, view Viewport, topOffset, bottomOffset float64) Position {
	rect := box.BoundingClientRect()
	top := rect.Top()
	if top-topOffset < 0 {
		return PositionTop
	}
	if top+rect.OffsetHeight()+bottomOffset <= view.InnerHeight() {
		return PositionIn
	}
	return PositionBottom
}
