// Package render writes vdom trees as HTML.
package render
