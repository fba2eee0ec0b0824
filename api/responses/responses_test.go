package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/types"
)

type stubRenderer struct {
	name string
	data any
}

func (s *stubRenderer) Render(w io.Writer, name string, data any) error {
	s.name = name
	s.data = data
	_, err := fmt.Fprintf(w, "<p>%s</p>", name)
	return err
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.Validation("email", "email is required")
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "email is required" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message == "boom" {
		t.Fatal("internal cause must not leak to the client")
	}
	if body.Error.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

func TestDescribeStateConflict(t *testing.T) {
	p := Describe(pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid"))
	if p.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", p.Status)
	}
	if p.Message != "order is already paid" {
		t.Fatalf("unexpected message %q", p.Message)
	}
}

func TestWritePageNegotiates(t *testing.T) {
	rnd := &stubRenderer{}

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	if err := WritePage(w, req, rnd, http.StatusOK, "pricing", "page", "data"); err != nil {
		t.Fatalf("write page: %v", err)
	}
	if rnd.name != "pricing" || rnd.data != "page" {
		t.Fatalf("renderer got %q %v", rnd.name, rnd.data)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	req = httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	if err := WritePage(w, req, &stubRenderer{}, http.StatusOK, "pricing", "page", "data"); err != nil {
		t.Fatalf("write page: %v", err)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data != "data" {
		t.Fatalf("unexpected data %v", body.Data)
	}
}

func TestRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	Redirect(w, req, "/dashboard")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected 303 to /dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	w = httptest.NewRecorder()
	Redirect(w, req, "/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for api clients, got %d", w.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.(map[string]any)["redirect"] != "/dashboard" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}
