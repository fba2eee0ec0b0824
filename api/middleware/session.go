package middleware

import (
	"context"
	"net/http"

	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/auth/session"
	"github.com/growly/growly-web/pkg/db/models"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
)

// PrincipalLoader resolves the account behind a session.
type PrincipalLoader interface {
	Principal(ctx context.Context, id uint) (*models.User, error)
}

// Session decodes the session cookie into the request context and resolves
// the signed-in user from the store on every request, so role changes apply
// immediately. A session pointing at a deleted user is treated as anonymous.
func Session(mgr *session.Manager, principals PrincipalLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := mgr.Load(r)
			if err != nil {
				writeError(w, r, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
				return
			}

			ctx := session.WithContext(r.Context(), &sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID)
			}

			if sess.UserID != 0 {
				user, err := principals.Principal(ctx, sess.UserID)
				switch {
				case err == nil:
					ctx = WithPrincipal(ctx, users.FromModel(user))
					if logg != nil {
						ctx = logg.WithPrincipal(ctx, user.ID, string(user.Role))
					}
				case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
					sess.UserID = 0
				default:
					writeError(w, r.WithContext(ctx), logg, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
