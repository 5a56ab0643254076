// Package view renders the embedded HTML pages of the hierarchy explorer.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/gmao/internal/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	once     sync.Once
	pages    map[string]*template.Template
	errParse error
)

// Funcs returns the template helpers bound to the request language.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		"join": strings.Join,
		"add":  func(a, b int) int { return a + b },
		// dict builds a map from key-value pairs for sub-templates.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// parse builds one template set per page, each wrapped in layout.html.
func parse() {
	pages = map[string]*template.Template{}
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		errParse = err
		return
	}
	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(Funcs(i18n.DefaultLang)).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			errParse = fmt.Errorf("parse %s: %w", name, err)
			return
		}
		pages[name] = t
	}
}

// Render executes the named page for r. Output is buffered so a failing template never writes a partial page.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(parse)
	if errParse != nil {
		return errParse
	}
	base, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(i18n.LangFromContext(r.Context())))

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
