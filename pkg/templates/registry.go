package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

//go:embed assets/**/*.tmpl
var embeddedFS embed.FS

// Template represents a parsed message template.
type Template struct {
	ID      string
	Path    string
	Content string

	parsed *template.Template
}

// Render executes the template with the provided data and returns the result.
func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.parsed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", t.ID, err)
	}

	return buf.String(), nil
}

// Registry holds loaded templates and resolves them by ID.
type Registry struct {
	fs        fs.FS
	templates map[string]*Template
	mu        sync.RWMutex
}

// NewRegistryFromFS constructs a registry from an arbitrary filesystem.
// Template IDs are derived from file paths with the .tmpl suffix dropped.
func NewRegistryFromFS(filesystem fs.FS) (*Registry, error) {
	r := &Registry{
		fs:        filesystem,
		templates: map[string]*Template{},
	}

	if err := r.loadAll(); err != nil {
		return nil, err
	}

	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Get returns a lazily initialized default registry rooted at embedded assets.
func Get() *Registry {
	defaultOnce.Do(func() {
		subFS, err := fs.Sub(embeddedFS, "assets")
		if err != nil {
			defaultErr = fmt.Errorf("access embedded templates: %w", err)
			return
		}
		defaultRegistry, defaultErr = NewRegistryFromFS(subFS)
	})

	if defaultErr != nil {
		panic(defaultErr)
	}

	return defaultRegistry
}

// Render renders a template by ID with data.
func (r *Registry) Render(id string, data any) (string, error) {
	r.mu.RLock()
	tmpl, exists := r.templates[id]
	r.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", id)
	}

	return tmpl.Render(data)
}

// loadAll walks the filesystem and parses every .tmpl file.
func (r *Registry) loadAll() error {
	return fs.WalkDir(r.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := fs.ReadFile(r.fs, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		id := strings.TrimSuffix(filepath.ToSlash(path), ".tmpl")

		parsed, err := template.New(id).Funcs(funcMap()).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		r.mu.Lock()
		r.templates[id] = &Template{
			ID:      id,
			Path:    path,
			Content: string(content),
			parsed:  parsed,
		}
		r.mu.Unlock()

		return nil
	})
}

// funcMap exposes formatting helpers to message templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		// money renders a thousands-grouped amount with two decimal places
		"money": func(d decimal.Decimal) string {
			return humanize.FormatFloat("#,###.##", d.InexactFloat64())
		},
		// percent renders a plain two-decimal value
		"percent": func(d decimal.Decimal) string {
			return fmt.Sprintf("%.2f", d.InexactFloat64())
		},
		"escape": EscapeHTML,
	}
}
