package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

type loginForm struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type statusForm struct {
	AutoLike bool   `json:"auto_like"`
	Paused   bool   `json:"paused"`
	Notes    string `json:"notes" validate:"max=5"`
	Likes    int64  `json:"likes"`
	UserID   uint   `form:"user_id" json:"-"`
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestDecodeRequestForm(t *testing.T) {
	req := formRequest(url.Values{"email": {" a@b.co "}, "password": {"pw"}})
	var dst loginForm
	if err := DecodeRequest(req, &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst.Email != "a@b.co" || dst.Password != "pw" {
		t.Fatalf("unexpected decode %+v", dst)
	}
}

func TestDecodeRequestJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	var dst loginForm
	if err := DecodeRequest(req, &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst.Email != "a@b.co" {
		t.Fatalf("unexpected decode %+v", dst)
	}
}

func TestDecodeRequestReportsFieldErrors(t *testing.T) {
	req := formRequest(url.Values{"email": {"a@b.co"}})
	var dst loginForm
	err := DecodeRequest(req, &dst)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, ok := pkgerrors.As(err).Details().(pkgerrors.FieldErrors)
	if !ok {
		t.Fatalf("expected field errors, got %T", pkgerrors.As(err).Details())
	}
	if fields["password"] != "password is required" {
		t.Fatalf("unexpected field errors %v", fields)
	}
	if pkgerrors.As(err).Message() != "password is required" {
		t.Fatalf("unexpected message %q", pkgerrors.As(err).Message())
	}
}

func TestDecodeFormKinds(t *testing.T) {
	req := formRequest(url.Values{"auto_like": {"on"}, "likes": {"12"}, "user_id": {"7"}, "notes": {"hi"}})
	var dst statusForm
	dst.Paused = true
	if err := DecodeRequest(req, &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !dst.AutoLike || dst.Paused {
		t.Fatalf("checkboxes decoded wrong: %+v", dst)
	}
	if dst.Likes != 12 || dst.UserID != 7 {
		t.Fatalf("numbers decoded wrong: %+v", dst)
	}

	req = formRequest(url.Values{"likes": {"many"}})
	err := DecodeRequest(req, &statusForm{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for bad int, got %v", err)
	}
	if fields, _ := pkgerrors.As(err).Details().(pkgerrors.FieldErrors); fields["likes"] == "" {
		t.Fatalf("expected likes field error, got %v", pkgerrors.As(err).Details())
	}
}

func TestDecodeFormCheckboxValues(t *testing.T) {
	for _, raw := range []string{"on", "true", "1", "yes", "YES"} {
		var dst statusForm
		if err := DecodeForm(formRequest(url.Values{"paused": {raw}}), &dst); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if !dst.Paused {
			t.Fatalf("%q should check the box", raw)
		}
	}

	dst := statusForm{Paused: true, AutoLike: true, Likes: 3}
	if err := DecodeForm(formRequest(url.Values{"paused": {"off"}, "extra": {"x"}}), &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst.Paused || dst.AutoLike || dst.Likes != 0 {
		t.Fatalf("expected zeroed destination, got %+v", dst)
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/blog/9", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "9")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := PathID(req, "id")
	if err != nil || id != 9 {
		t.Fatalf("expected 9, got %d %v", id, err)
	}
	if _, err := ParseID("0", "id"); err == nil {
		t.Fatal("zero id must be rejected")
	}
	if _, err := ParseID("abc", "id"); err == nil {
		t.Fatal("non-numeric id must be rejected")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello world ", 5); got != "hello" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
}

func TestSanitizeStringStripsControlCharacters(t *testing.T) {
	if got := SanitizeString("a\x00b\r\nc\td", 0); got != "ab\nc\td" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
	if got := SanitizeString("héllo", 2); got != "hé" {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}
