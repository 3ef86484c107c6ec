package sticky

import (
	"strconv"
	"strings"
)

// CSS classes applied by Render.
const (
	ContainerClass     = "sticky-element-container"
	ElementClass       = "sticky-element"
	StickyClass        = "sticky-element--sticky"
	StickyTopClass     = "sticky-element--sticky-top"
	StickyBottomClass  = "sticky-element--sticky-bottom"
	TriggerClass       = "sticky-element__trigger"
	TopTriggerClass    = "sticky-element__trigger--top"
	BottomTriggerClass = "sticky-element__trigger--bottom"
)

// nativeStyle formats the declaration used when the engine supports sticky
// positioning. The bottom offset is written without a unit.
func nativeStyle(top float64, bottom *float64) string {
	style := "position: sticky; top: " + formatNumber(top) + "px;"
	if bottom != nil {
		style += " bottom: " + formatNumber(*bottom) + ";"
	}
	return style
}

// classList returns the element classes for the given flags.
func classList(sticky, top, bottom bool) string {
	classes := []string{ElementClass}
	if sticky {
		classes = append(classes, StickyClass)
	}
	if top {
		classes = append(classes, StickyTopClass)
	}
	if bottom {
		classes = append(classes, StickyBottomClass)
	}
	return strings.Join(classes, " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
