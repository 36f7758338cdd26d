package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/target/hr-console/internal/http/templates/core"
)

// Entry templates every template set must define.
const (
	tmplLayout  = "layout"
	tmplContent = "content"
	tmplError   = "error-layout"
	tmplLogin   = "login"
)

//nolint:gochecknoglobals // fixed parse order
var templateGlobs = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer renders the console's HTML pages.
type TemplateRenderer struct {
	t       *template.Template
	devMode bool
	logger  *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // required
	DevMode    bool         // marks pages as uncacheable
	Logger     *slog.Logger // optional
}

// PartialView is the fragment htmx swaps into #main-content.
type PartialView struct {
	Template  string // content template, see ContentTemplateFor
	Title     string // document title
	PageTitle string // top bar heading, swapped out of band
}

// NewTemplateRenderer parses the template set and checks the entry templates exist.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{Template: &t, ContentTemplateFor: ContentTemplateFor})
	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, templateGlobs...)
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{tmplLayout, tmplContent, tmplError, tmplLogin} {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q is not defined", name)
		}
	}
	return &TemplateRenderer{t: t, devMode: cfg.DevMode, logger: logger}, nil
}

// RenderFull renders the page inside the application shell.
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.write(w, http.StatusOK, tmplLayout, data)
}

// RenderPartial renders the content fragment with a <title> for htmx and the
// top bar heading as an out-of-band swap.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, view PartialView, data any) error {
	var buf bytes.Buffer
	buf.WriteString(`<title>` + html.EscapeString(view.Title) + `</title>`)
	buf.WriteString(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(view.PageTitle) + `</h1>`)
	if err := r.t.ExecuteTemplate(&buf, view.Template, data); err != nil {
		r.logTemplateError(view.Template, err)
		return err
	}
	return r.flush(w, http.StatusOK, view.Template, &buf)
}

// RenderError renders the standalone error page with status.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, status int, data any) error {
	return r.write(w, status, tmplError, data)
}

// RenderNamed renders a standalone template such as the login page.
func (r *TemplateRenderer) RenderNamed(w http.ResponseWriter, name string, data any) error {
	return r.write(w, http.StatusOK, name, data)
}

// write executes into a buffer first so a failing template leaves w untouched.
func (r *TemplateRenderer) write(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logTemplateError(name, err)
		return err
	}
	return r.flush(w, status, name, &buf)
}

func (r *TemplateRenderer) flush(w http.ResponseWriter, status int, name string, buf *bytes.Buffer) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.devMode {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}

func (r *TemplateRenderer) logTemplateError(name string, err error) {
	r.logger.Error("template execution failed", slog.String("template", name), slog.Any("error", err))
}
