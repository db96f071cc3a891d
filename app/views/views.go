// Package views renders the blog's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render.
const (
	EntryIndex = "entries/index"
	EntryShow  = "entries/show"
	Error      = "errors/error"
)

var pages = map[string][]string{
	EntryIndex: {"templates/layout.html", "templates/entries/index.html"},
	EntryShow:  {"templates/layout.html", "templates/entries/show.html", "templates/shared/comment_form.html"},
	Error:      {"templates/layout.html", "templates/errors/error.html"},
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.UTC().Format("January 2, 2006")
	},
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for name, files := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Must is like New but panics on error.
func Must() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes page with data and writes it with the given status. The
// page is rendered to a buffer first so a template failure never leaves a
// half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// ErrorPage is the data rendered by the Error page.
type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

// RenderError renders the error page for status.
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message string) error {
	return r.Render(w, status, Error, ErrorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	})
}

// Static serves the embedded stylesheet and other assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
