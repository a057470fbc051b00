// Package web is the render collaborator: it turns a view name and a data
// bundle into a server-rendered HTML page. The orchestration core consumes
// it through an interface and never touches templates directly.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var funcs = template.FuncMap{
	"formatDate":  formatDate,
	"formatPrice": formatPrice,
}

// formatDate renders a calendar date as YYYY-MM-DD. A zero date renders as
// an empty string rather than failing the page.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Renderer renders named views from the embedded template set. Each view is
// a standalone template file; shared chrome lives in the nav partial.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates. Parse failures surface at
// startup, not per-request.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("web: failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named view populated with data.
func (r *Renderer) Render(w io.Writer, view string, data interface{}) error {
	if err := r.tmpl.ExecuteTemplate(w, view+".gohtml", data); err != nil {
		return fmt.Errorf("web: failed to render view %q: %w", view, err)
	}
	return nil
}
