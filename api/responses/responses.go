package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
	"github.com/growly/growly-web/pkg/types"
)

// Renderer executes a named HTML template.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Problem is the public view of an error: what the client may see.
type Problem struct {
	Status  int
	Code    pkgerrors.Code
	Message string
	Details any
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WantsHTML reports whether the client negotiates an HTML response.
func WantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// WritePage renders name for browsers and the JSON envelope of data for
// everyone else.
func WritePage(w http.ResponseWriter, r *http.Request, rnd Renderer, status int, name string, page any, data any) error {
	if !WantsHTML(r) {
		WriteSuccessStatus(w, status, data)
		return nil
	}
	return WriteHTML(w, rnd, status, name, page)
}

// WriteHTML renders name with the supplied status.
func WriteHTML(w http.ResponseWriter, rnd Renderer, status int, name string, page any) error {
	var sb strings.Builder
	if err := rnd.Render(&sb, name, page); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, sb.String())
	return err
}

// Redirect sends browsers a 303 and API clients the target as JSON.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if WantsHTML(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	WriteSuccess(w, types.Redirect{Redirect: target})
}

// Describe maps err onto its public shape. Untyped errors become internal.
func Describe(err error) Problem {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if m := typed.Message(); meta.ExposeMessage && m != "" {
		msg = m
	}

	p := Problem{Status: meta.HTTPStatus, Code: typed.Code(), Message: msg}
	if meta.DetailsAllowed {
		p.Details = typed.Details()
	}
	return p
}

// LogError records err with its dump. Client errors log at warn.
func LogError(ctx context.Context, logg *logger.Logger, err error) {
	if logg == nil || err == nil {
		return
	}
	fields := pkgerrors.Dump(err).Fields()
	ctx = logg.WithFields(ctx, fields)

	if Describe(err).Status < http.StatusInternalServerError {
		logg.Warn(ctx, "request.error", err)
		return
	}
	logg.Error(ctx, "request.error", err)
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	LogError(ctx, logg, err)
	p := Describe(err)
	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(p.Code),
			Message: p.Message,
			Details: p.Details,
		},
	}
	writeJSON(w, p.Status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
