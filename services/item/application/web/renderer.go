// Package web renders the inventory page and serves its static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/ghuser/itemstore/services/item/domain/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer turns the current item list into the HTML page. It holds only the
// parsed template and is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

type pageData struct {
	Title string
	Items []*models.Item
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page listing items, one table row per item in the given order.
func (r *Renderer) Render(w io.Writer, items []*models.Item) error {
	if err := r.tmpl.ExecuteTemplate(w, "index.html", pageData{Title: "Inventory", Items: items}); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}

// Static serves the page's script and stylesheet. Mount it with the /static
// prefix stripped.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
