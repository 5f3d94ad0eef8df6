// ABOUTME: TemplateEngine loads embedded HTML templates and renders them with Go's html/template.
// ABOUTME: Page bodies are written in markdown and converted to HTML with goldmark at render time.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/2389-research/hellopage/page"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// StylesheetPath is where the embedded application stylesheet is served.
const StylesheetPath = "/static/css/application.css"

// PageData holds all data passed to templates for rendering.
type PageData struct {
	Title      string
	Heading    string
	Body       string // markdown
	Lang       string
	Stylesheet string
}

// PageDataFrom builds template data for a page definition.
func PageDataFrom(def page.Definition) PageData {
	return PageData{
		Title:      def.Title,
		Heading:    def.Heading,
		Body:       def.Body,
		Lang:       def.Lang,
		Stylesheet: StylesheetPath,
	}
}

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

// templateFuncs returns the FuncMap available to all templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": markdownToHTML,
	}
}

// markdownToHTML converts a markdown string to HTML using goldmark.
// Raw HTML in the input is stripped to prevent XSS.
func markdownToHTML(input string) template.HTML {
	var buf bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
// Each page template is parsed together with the layout so that the layout wraps every page.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcs := templateFuncs()

	pages := []string{
		"home.html",
	}

	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		engine.templates[name] = t
	}

	return engine, nil
}

// RenderTo executes the named template with the given data and writes the
// result to w.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return t.ExecuteTemplate(w, "layout.html", data)
}
