package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/sticky/pkg/vdom"
)

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"), vdom.StyleAttr("position: sticky; top: 10px;"),
		vdom.H1("Title"),
		vdom.P("Content"),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="container" style="position: sticky; top: 10px;"><h1>Title</h1><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderSkipsEmptyAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Div(vdom.StyleAttr(""), vdom.Key("k"), vdom.AriaHidden(true)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<div aria-hidden="true"></div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Div(vdom.Data("hook", `Sticky:{"edge":"top"}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `data-hook="Sticky:{&quot;edge&quot;:&quot;top&quot;}"`) {
		t.Errorf("attribute not escaped, got %q", html)
	}
}

func TestRenderVoidAndComponent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Func(func() *vdom.VNode { return vdom.Span("x") }),
		vdom.Fragment(vdom.Text("a"), vdom.Raw("<b>b</b>")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<div><meta charset="utf-8"><span>x</span>a<b>b</b></div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	html, err := renderer.RenderToString(vdom.Div(vdom.Div(vdom.P("x"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<div>\n  <div>\n    <p>x</p>\n  </div>\n</div>\n"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	err := renderer.RenderPage(&buf, PageData{
		Title:   "Demo",
		Styles:  []string{".a{color:red}"},
		Scripts: []string{"/client.js"},
		Body:    vdom.Main("hi"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Demo</title>",
		"<style>.a{color:red}</style>",
		"<main>hi</main>",
		`<script defer src="/client.js"></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q in %q", want, html)
		}
	}
}

func TestEscapingByContext(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.P(vdom.Data("note", "a\tb\n'c'"), `"Tom" & <Jerry>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<p data-note="a&#9;b&#10;&#39;c&#39;">"Tom" &amp; &lt;Jerry&gt;</p>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}
