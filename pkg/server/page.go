package server

import (
	"fmt"
	"net/http"

	"github.com/vango-dev/sticky/pkg/geom"
	"github.com/vango-dev/sticky/pkg/render"
	"github.com/vango-dev/sticky/pkg/sticky"
	"github.com/vango-dev/sticky/pkg/vdom"
)

// demoCSS pins elements whose browser lacks native sticky support. The
// bottom fallback anchors to the section that holds the scrolling text.
const demoCSS = `body{margin:0;font-family:sans-serif}
section{position:relative}
.sticky-element{background:#fff;padding:8px 16px;border-bottom:1px solid #ddd}
.sticky-element--sticky-top:not([style*="sticky"]){position:fixed;top:0;left:0;right:0}
.sticky-element--sticky-bottom:not([style*="sticky"]){position:absolute;bottom:0;left:0;right:0}
.sticky-element__trigger{height:1px}
section p{padding:0 16px;line-height:1.6}`

const demoParagraphs = 40

// handlePage renders the demo document with the element in its unmeasured
// state. The browser hook takes over once connected.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	el := sticky.New(geom.NewViewport(0, 0), s.StickyConfig())
	defer el.Close()

	paragraphs := make([]*vdom.VNode, demoParagraphs)
	for i := range paragraphs {
		paragraphs[i] = vdom.P(fmt.Sprintf("Paragraph %d of the scrolling region.", i+1))
	}

	body := vdom.Main(
		vdom.Header(vdom.H1(s.config.Title)),
		vdom.Section(
			el.Render(vdom.Span("Sticky content")),
			paragraphs,
		),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderer := render.NewRenderer(render.RendererConfig{})
	err := renderer.RenderPage(w, render.PageData{
		Title:   s.config.Title,
		Styles:  []string{demoCSS},
		Scripts: []string{"/client.js"},
		Body:    body,
	})
	if err != nil {
		s.logger.Error("render failed", "error", err)
	}
}
