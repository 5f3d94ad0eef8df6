// ABOUTME: StaticPage serves one pre-rendered HTML document for the root path.
// ABOUTME: The document is rendered once at construction so every response is byte-identical.
package web

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/2389-research/hellopage/page"
)

// homeTemplate is the template StaticPage renders its document from.
const homeTemplate = "home.html"

// StaticPage is an http.Handler that always answers with the same document.
// It holds no mutable state and is safe for concurrent use.
type StaticPage struct {
	name string
	body []byte
}

// NewStaticPage renders def through the engine's home template. A rendering
// failure is a configuration error and is returned to the caller.
func NewStaticPage(engine *TemplateEngine, def page.Definition) (*StaticPage, error) {
	if engine == nil {
		return nil, fmt.Errorf("template engine must not be nil")
	}
	normalized, err := def.Normalize()
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", def.Name, err)
	}
	def = normalized

	var buf bytes.Buffer
	if err := engine.RenderTo(&buf, homeTemplate, PageDataFrom(def)); err != nil {
		return nil, fmt.Errorf("rendering page %q: %w", def.Name, err)
	}

	return &StaticPage{name: def.Name, body: buf.Bytes()}, nil
}

// Name returns the name of the page definition this document was built from.
func (p *StaticPage) Name() string {
	return p.name
}

// Body returns a copy of the rendered document.
func (p *StaticPage) Body() []byte {
	return bytes.Clone(p.body)
}

// ServeHTTP writes the rendered document with status 200.
func (p *StaticPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "text/html")
	h.Set("Content-Length", strconv.Itoa(len(p.body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(p.body); err != nil {
		log.Printf("web static page write failed page=%s err=%v", p.name, err)
	}
}
