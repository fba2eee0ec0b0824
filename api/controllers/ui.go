package controllers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/growly/growly-web/api/middleware"
	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/api/views"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
)

// UI bundles what every page handler needs to answer a request.
type UI struct {
	Renderer responses.Renderer
	Logger   *logger.Logger
}

// NewUI validates the renderer.
func NewUI(rnd responses.Renderer, logg *logger.Logger) (*UI, error) {
	if rnd == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "renderer required")
	}
	return &UI{Renderer: rnd, Logger: logg}, nil
}

func (ui *UI) page(r *http.Request, title string, data any) views.Page {
	return views.Page{
		Title:     title,
		Viewer:    middleware.PrincipalFromContext(r.Context()),
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}
}

// render writes an HTML page, or jsonData for API clients.
func (ui *UI) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page, jsonData any) {
	if err := responses.WritePage(w, r, ui.Renderer, status, name, page, jsonData); err != nil {
		ui.fail(w, r, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render page"))
	}
}

type errorData struct {
	RequestID string
}

// fail answers err with the error page or the JSON error envelope.
func (ui *UI) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !responses.WantsHTML(r) {
		responses.WriteError(r.Context(), ui.Logger, w, err)
		return
	}
	responses.LogError(r.Context(), ui.Logger, err)
	p := responses.Describe(err)
	page := ui.page(r, p.Message, errorData{RequestID: middleware.RequestIDFromContext(r.Context())})
	if werr := responses.WriteHTML(w, ui.Renderer, p.Status, "error", page); werr != nil {
		http.Error(w, p.Message, p.Status)
	}
}

// formError re-renders a form page with the error inline. API clients get
// the JSON error envelope.
func (ui *UI) formError(w http.ResponseWriter, r *http.Request, name string, page views.Page, err error) {
	if !responses.WantsHTML(r) {
		responses.WriteError(r.Context(), ui.Logger, w, err)
		return
	}
	responses.LogError(r.Context(), ui.Logger, err)
	p := responses.Describe(err)
	page.Error = p.Message
	if fields, ok := p.Details.(pkgerrors.FieldErrors); ok {
		page.Fields = fields
	}
	if werr := responses.WriteHTML(w, ui.Renderer, p.Status, name, page); werr != nil {
		ui.fail(w, r, pkgerrors.Wrap(pkgerrors.CodeInternal, werr, "render page"))
	}
}

// formValues echoes submitted fields back into a re-rendered form.
// Passwords are never echoed.
func formValues(r *http.Request, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = r.PostFormValue(k)
	}
	return out
}
