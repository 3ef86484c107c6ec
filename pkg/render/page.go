package render

import (
	"io"

	"github.com/vango-dev/sticky/pkg/vdom"
)

// PageData contains what is needed to render a complete HTML page.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// Styles are inline CSS blocks placed in the head.
	Styles []string

	// Scripts are script URLs loaded with defer at the end of the body.
	Scripts []string

	// Body is the page content.
	Body *vdom.VNode
}

// RenderPage writes a full HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := []any{
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.Title(page.Title),
	}
	for _, css := range page.Styles {
		head = append(head, vdom.Style(vdom.Raw(css)))
	}

	body := []any{page.Body}
	for _, src := range page.Scripts {
		body = append(body, vdom.Script(vdom.Src(src), vdom.Defer()))
	}

	doc := vdom.Html(vdom.Lang(lang),
		vdom.Head(head...),
		vdom.Body(body...),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
		return err
	}
	return r.RenderToWriter(w, doc)
}
