// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/currency"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile = "layout.html"
	// fragmentPrefix marks templates rendered without the layout.
	fragmentPrefix = "fragment_"
)

// Raw HTML inside markdown is escaped because WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

// Page is the data every template receives.
type Page struct {
	Title     string
	Viewer    *users.UserDTO
	CSRFField template.HTML
	Error     string
	Notice    string
	Fields    pkgerrors.FieldErrors
	Form      map[string]string
	Data      any
}

// HasRole reports whether the signed-in viewer holds any of roles.
func (p Page) HasRole(roles ...string) bool {
	if p.Viewer == nil {
		return false
	}
	for _, r := range roles {
		if string(p.Viewer.Role) == r {
			return true
		}
	}
	return false
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page against the shared layout.
func New() (*Renderer, error) {
	return newFromFS(templateFS)
}

func newFromFS(fsys fs.FS) (*Renderer, error) {
	sub, err := fs.Sub(fsys, "templates")
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	pages := make(map[string]*template.Template, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == layoutFile || !strings.HasSuffix(name, ".html") {
			continue
		}
		key := strings.TrimSuffix(name, ".html")
		var tpl *template.Template
		if strings.HasPrefix(key, fragmentPrefix) {
			tpl, err = template.New(name).Funcs(funcs()).ParseFS(sub, name)
		} else {
			tpl, err = template.New(layoutFile).Funcs(funcs()).ParseFS(sub, layoutFile, name)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[key] = tpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. Rendering happens into a buffer so a
// template failure never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a page is registered.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": RenderMarkdown,
		"usd": func(d decimal.Decimal) string {
			return currency.Format(d, enums.CurrencyUSD)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"field": func(p Page, name string) string {
			if p.Form == nil {
				return ""
			}
			return p.Form[name]
		},
		"fieldError": func(p Page, name string) string {
			if p.Fields == nil {
				return ""
			}
			return p.Fields[name]
		},
		"derefUint": func(v *uint) uint {
			if v == nil {
				return 0
			}
			return *v
		},
		"currencies": func() []enums.Currency {
			return []enums.Currency{enums.CurrencyUSD, enums.CurrencyEUR, enums.CurrencyGBP, enums.CurrencyCAD, enums.CurrencyAUD}
		},
	}
}

// RenderMarkdown converts a post body to HTML.
func RenderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
