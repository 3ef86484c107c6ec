// Package vdom is the virtual DOM used to describe sticky containers and the
// pages that host them.
//
// Elements are built from variadic arguments; attributes, children, text and
// nil (for conditional attributes) may be mixed freely:
//
//	Div(Class("sticky-element"), StyleAttr(style),
//	    P("content"),
//	)
package vdom
