package middleware

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/growly/growly-web/pkg/config"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
)

const (
	CSRFFieldName  = "csrf_token"
	csrfCookieName = "growly_csrf"
)

// CSRF guards unsafe methods with gorilla/csrf. The token key is derived
// from the session secret.
func CSRF(csrfCfg config.CSRFConfig, sessionCfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	if !csrfCfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	key := sha256.Sum256([]byte("csrf:" + sessionCfg.Secret))
	protect := csrf.Protect(
		key[:],
		csrf.Secure(sessionCfg.Secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := pkgerrors.New(pkgerrors.CodeForbidden, "invalid or missing csrf token")
			if reason := csrf.FailureReason(r); reason != nil && logg != nil {
				logg.Warn(logg.WithField(r.Context(), "csrf_reason", reason.Error()), "csrf.rejected")
			}
			writeError(w, r, nil, err)
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if sessionCfg.Secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
