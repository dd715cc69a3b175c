package view

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer draws views from "<view>.html" files. Each file is
// parsed together with the optional "layout.html" partials.
type TemplateRenderer struct {
	views map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
}

// LoadTemplates parses every *.html file in dir.
func LoadTemplates(dir string) (*TemplateRenderer, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("list templates in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}

	var layout string
	for _, f := range files {
		if filepath.Base(f) == "layout.html" {
			layout = f
		}
	}

	r := &TemplateRenderer{views: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layout {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(f), ".html")
		paths := []string{f}
		if layout != "" {
			paths = append(paths, layout)
		}
		tmpl, err := template.New(filepath.Base(f)).Funcs(funcs).ParseFiles(paths...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", f, err)
		}
		r.views[name] = tmpl
	}
	return r, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return tmpl.Execute(w, data)
}
