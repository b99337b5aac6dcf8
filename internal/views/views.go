// Package views renders the HTML pages. Engine satisfies fiber.Views.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Engine holds one parsed template set per page, each combined with the
// shared layout and partials.
type Engine struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New returns an engine over the embedded templates. Load must be called
// before Render; fiber does this when the app is created.
func New() *Engine {
	return &Engine{}
}

// Load parses every page template.
func (e *Engine) Load() error {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile || file == partialsFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).ParseFS(templatesFS, layoutFile, partialsFile, file)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
		pages[name] = t
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render writes page name through the layout. A layout argument, when
// given, names the template to execute instead of "layout".
func (e *Engine) Render(w io.Writer, name string, binding interface{}, layout ...string) error {
	e.mu.RLock()
	t, ok := e.pages[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	entry := "layout"
	if len(layout) > 0 && layout[0] != "" {
		entry = layout[0]
	}
	return t.ExecuteTemplate(w, entry, binding)
}
