package controllers

import (
	"net/http"

	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/posts"
	"github.com/growly/growly-web/pkg/pagination"
)

func BlogList(svc posts.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		params := pagination.ParseParams(q.Get("page"), q.Get("limit"))
		result, err := svc.List(r.Context(), params)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		ui.render(w, r, http.StatusOK, "blogs", ui.page(r, "Blog", result), result)
	}
}

// BlogDetail counts one view per request.
func BlogDetail(svc posts.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		post, err := svc.View(r.Context(), id)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		ui.render(w, r, http.StatusOK, "blog", ui.page(r, post.Title, post), post)
	}
}
