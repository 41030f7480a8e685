// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Page template names.
const (
	PageRegister = "index"
	PageLogin    = "login"
	PageProfile  = "profile"
	PageEdit     = "edit"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"shortDate": shortDate,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the named page template.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	if r.templates.Lookup(name) == nil {
		return errors.Errorf("unknown template %q", name)
	}

	return r.templates.ExecuteTemplate(w, name, data)
}
