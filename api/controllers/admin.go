package controllers

import (
	"net/http"

	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/dashboard"
	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/posts"
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/enums"
)

const dashboardPath = "/dashboard"

type dashboardData struct {
	Summary *dashboard.Summary `json:"summary"`
}

func Dashboard(svc dashboard.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		data := dashboardData{Summary: summary}
		ui.render(w, r, http.StatusOK, "dashboard", ui.page(r, "Dashboard", data), data)
	}
}

// dashboardFormError re-renders the dashboard with a failed form inline.
func dashboardFormError(w http.ResponseWriter, r *http.Request, svc dashboard.Service, ui *UI, form map[string]string, cause error) {
	summary, err := svc.Summary(r.Context())
	if err != nil {
		ui.fail(w, r, err)
		return
	}
	page := ui.page(r, "Dashboard", dashboardData{Summary: summary})
	page.Form = form
	ui.formError(w, r, "dashboard", page, cause)
}

func CreatePost(postSvc posts.Service, dash dashboard.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body posts.CreatePostDTO
		if err := validators.DecodeRequest(r, &body); err != nil {
			dashboardFormError(w, r, dash, ui, formValues(r, "title", "author", "image_url", "excerpt", "body"), err)
			return
		}
		post, err := postSvc.Create(r.Context(), body)
		if err != nil {
			dashboardFormError(w, r, dash, ui, formValues(r, "title", "author", "image_url", "excerpt", "body"), err)
			return
		}
		if responses.WantsHTML(r) {
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

type assignRoleForm struct {
	Email string `json:"email" form:"email" validate:"required"`
	Role  string `json:"role" form:"role" validate:"required"`
}

func AssignRole(userSvc users.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body assignRoleForm
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		user, err := userSvc.AssignRole(r.Context(), body.Email, body.Role)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		if responses.WantsHTML(r) {
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}
		responses.WriteSuccess(w, users.FromModel(user))
	}
}

type orderStatusForm struct {
	Status string `json:"status" form:"status" validate:"required"`
}

// OrderStatus moves an order through its state machine.
func OrderStatus(orderSvc orders.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		var body orderStatusForm
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		order, err := orderSvc.Transition(r.Context(), id, enums.OrderStatus(body.Status))
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		if responses.WantsHTML(r) {
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
