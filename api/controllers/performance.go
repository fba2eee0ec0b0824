package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/growly/growly-web/api/middleware"
	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/growth"
	"github.com/growly/growly-web/internal/users"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

// Performance shows a user's snapshot series, seeding a synthetic history
// the first time. Without {userId} it shows the viewer's own series.
func Performance(userSvc users.Service, growthSvc growth.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id uint
		if raw := chi.URLParam(r, "userId"); raw != "" {
			parsed, err := validators.ParseID(raw, "userId")
			if err != nil {
				ui.fail(w, r, err)
				return
			}
			id = parsed
		} else if p := middleware.PrincipalFromContext(r.Context()); p != nil {
			id = p.ID
		} else {
			ui.fail(w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required"))
			return
		}

		if _, err := userSvc.Principal(r.Context(), id); err != nil {
			ui.fail(w, r, err)
			return
		}
		series, err := growthSvc.Series(r.Context(), id)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		ui.render(w, r, http.StatusOK, "performance", ui.page(r, "Performance", series), series)
	}
}
