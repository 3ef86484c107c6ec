// Package geom provides the layout geometry reported by the browser for
// sticky triggers: bounding rectangles and viewport dimensions.
package geom

// Rect is a bounding client rectangle, relative to the viewport's top-left
// corner, in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a Rect with the given origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Top returns the top edge (y for positive height, y + height for negative).
func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Bottom returns the bottom edge (y + height for positive height, y for negative).
func (r Rect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge.
func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// OffsetHeight returns the absolute layout height.
func (r Rect) OffsetHeight() float64 {
	if r.Height < 0 {
		return -r.Height
	}
	return r.Height
}

// Box is a fixed measurement of an element. It satisfies sticky.Box and is
// what the server holds for a trigger between client reports.
type Box struct {
	rect Rect
}

// NewBox creates a Box holding r.
func NewBox(r Rect) *Box {
	return &Box{rect: r}
}

// BoundingClientRect returns the last measured rectangle.
func (b *Box) BoundingClientRect() Rect {
	return b.rect
}

// Measure replaces the stored rectangle.
func (b *Box) Measure(r Rect) {
	b.rect = r
}

// Viewport is the visible area of the document.
type Viewport struct {
	width  float64
	height float64
}

// NewViewport creates a Viewport of the given size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{width: width, height: height}
}

// InnerWidth returns the viewport width.
func (v *Viewport) InnerWidth() float64 {
	return v.width
}

// InnerHeight returns the viewport height.
func (v *Viewport) InnerHeight() float64 {
	return v.height
}

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height float64) {
	v.width = width
	v.height = height
}
