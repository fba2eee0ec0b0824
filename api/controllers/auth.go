package controllers

import (
	"net/http"

	"github.com/growly/growly-web/api/middleware"
	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/auth"
	"github.com/growly/growly-web/pkg/auth/session"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

func LoginForm(ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p := middleware.PrincipalFromContext(r.Context()); p != nil && responses.WantsHTML(r) {
			http.Redirect(w, r, auth.RedirectFor(p.Role), http.StatusSeeOther)
			return
		}
		ui.render(w, r, http.StatusOK, "login", ui.page(r, "Log in", nil), map[string]any{})
	}
}

// Login authenticates against the per-session lockout. The session cookie
// is written after every attempt so failure counts survive the request.
func Login(svc auth.Service, mgr *session.Manager, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			ui.fail(w, r, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
			return
		}

		page := ui.page(r, "Log in", nil)
		if err := svc.CheckLockout(sess); err != nil {
			ui.formError(w, r, "login", page, err)
			return
		}
		var body auth.LoginRequest
		if err := validators.DecodeRequest(r, &body); err != nil {
			page.Form = formValues(r, "email")
			ui.formError(w, r, "login", page, err)
			return
		}

		result, err := svc.Login(r.Context(), sess, body)
		if saveErr := mgr.Save(w, *sess); saveErr != nil {
			ui.fail(w, r, pkgerrors.Wrap(pkgerrors.CodeInternal, saveErr, "save session"))
			return
		}
		if err != nil {
			page.Form = map[string]string{"email": body.Email}
			ui.formError(w, r, "login", page, err)
			return
		}

		if responses.WantsHTML(r) {
			http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func SignupForm(ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ui.render(w, r, http.StatusOK, "signup", ui.page(r, "Sign up", nil), map[string]any{})
	}
}

// Signup creates a user account and signs the session in.
func Signup(svc auth.Service, mgr *session.Manager, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			ui.fail(w, r, pkgerrors.New(pkgerrors.CodeInternal, "session middleware missing"))
			return
		}

		page := ui.page(r, "Sign up", nil)
		var body auth.SignupRequest
		if err := validators.DecodeRequest(r, &body); err != nil {
			page.Form = formValues(r, "email", "name", "instagram")
			ui.formError(w, r, "signup", page, err)
			return
		}

		result, err := svc.Signup(r.Context(), sess, body)
		if err != nil {
			page.Form = map[string]string{"email": body.Email, "name": body.Name, "instagram": body.Instagram}
			ui.formError(w, r, "signup", page, err)
			return
		}
		if err := mgr.Save(w, *sess); err != nil {
			ui.fail(w, r, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save session"))
			return
		}

		if responses.WantsHTML(r) {
			http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// Logout expires the cookie and revokes the session id. A registry failure
// is logged; the user is still signed out locally.
func Logout(mgr *session.Manager, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			s := session.New()
			sess = &s
		}
		if err := mgr.Clear(r.Context(), w, *sess); err != nil && ui.Logger != nil {
			ui.Logger.Warn(r.Context(), "session.revoke_failed", err)
		}
		responses.Redirect(w, r, "/")
	}
}
