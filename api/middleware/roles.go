package middleware

import (
	"net/http"

	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
)

const loginPath = "/login"

// RequireRole admits only principals whose role is in roles. Browsers are
// sent to the login page; other clients get 403.
func RequireRole(logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	allowed := enums.NewRoleSet(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil || !allowed.Contains(p.Role) {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "required_roles", roles)
					logg.Warn(ctx, "access.denied")
				}
				if responses.WantsHTML(r) {
					http.Redirect(w, r, loginPath, http.StatusSeeOther)
					return
				}
				responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
