package vdom

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class joins the non-empty class names into the class attribute.
func Class(classes ...string) Attr {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			names = append(names, c)
		}
	}
	return attr("class", strings.Join(names, " "))
}

// StyleAttr sets the inline style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// AriaHidden sets aria-hidden.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Defer marks a script as deferred.
func Defer() Attr { return attr("defer", true) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }
