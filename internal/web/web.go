// Package web renders the public HTML pages from embedded templates and
// serves the static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutName = "layout"

// Template names accepted by Renderer.Instance
const (
	TemplateHome      = "home"
	TemplateProducts  = "products"
	TemplateProduct   = "product"
	TemplateText      = "text"
	TemplateContact   = "contact"
	TemplateQuote     = "quote"
	TemplateQuoteSent = "quote_sent"
	TemplateError     = "error"
)

var templateNames = []string{
	TemplateHome,
	TemplateProducts,
	TemplateProduct,
	TemplateText,
	TemplateContact,
	TemplateQuote,
	TemplateQuoteSent,
	TemplateError,
}

// Renderer implements gin's render.HTMLRender. Each page is parsed together
// with the shared layout into its own template set.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(templateNames))}
	for _, name := range templateNames {
		t, err := template.New(layoutName).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Instance returns the render for a page. Unknown names render the error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		t = r.templates[TemplateError]
	}
	return render.HTML{Template: t, Name: layoutName, Data: data}
}

// Static returns the embedded static assets
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
