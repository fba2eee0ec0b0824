package controllers

import (
	"net/http"

	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/growth"
	"github.com/growly/growly-web/internal/tickets"
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

const staffPath = "/staff"

type staffData struct {
	Users   []users.UserDTO `json:"users"`
	Tickets []models.Ticket `json:"open_tickets"`
}

type userIDForm struct {
	UserID uint `json:"user_id" form:"user_id" validate:"required"`
}

func StaffPanel(userSvc users.Service, ticketSvc tickets.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := userSvc.List(r.Context())
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		open, err := ticketSvc.ListOpen(r.Context())
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		data := staffData{Users: list, Tickets: open}
		ui.render(w, r, http.StatusOK, "staff", ui.page(r, "Staff", data), data)
	}
}

// UserDetail renders a page fragment for one user.
func UserDetail(userSvc users.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		detail, err := userSvc.Detail(r.Context(), id)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		ui.render(w, r, http.StatusOK, "fragment_user_detail", ui.page(r, detail.User.Email, detail), detail)
	}
}

func staffDone(w http.ResponseWriter, r *http.Request, data any) {
	if responses.WantsHTML(r) {
		http.Redirect(w, r, staffPath, http.StatusSeeOther)
		return
	}
	responses.WriteSuccess(w, data)
}

type staffAddForm struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Name     string `json:"name" form:"name" validate:"max=120"`
}

// StaffAdd creates a staff account. An email that is already registered is
// ignored.
func StaffAdd(userSvc users.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body staffAddForm
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		user, err := userSvc.CreateAccount(r.Context(), users.CreateAccountInput{
			Email:    body.Email,
			Password: body.Password,
			Name:     body.Name,
			Role:     enums.RoleStaff,
		})
		switch {
		case pkgerrors.IsCode(err, pkgerrors.CodeConflict):
			if ui.Logger != nil {
				ui.Logger.Warn(ui.Logger.WithField(r.Context(), "email", users.NormalizeEmail(body.Email)), "staff.add.duplicate_ignored")
			}
			staffDone(w, r, map[string]bool{"created": false})
		case err != nil:
			ui.fail(w, r, err)
		default:
			staffDone(w, r, users.FromModel(user))
		}
	}
}

func userAction(ui *UI, action func(r *http.Request, id uint) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body userIDForm
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		data, err := action(r, body.UserID)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		staffDone(w, r, data)
	}
}

func Promote(userSvc users.Service, ui *UI) http.HandlerFunc {
	return userAction(ui, func(r *http.Request, id uint) (any, error) {
		return map[string]any{"user_id": id, "role": enums.RoleStaff}, userSvc.Promote(r.Context(), id)
	})
}

func Demote(userSvc users.Service, ui *UI) http.HandlerFunc {
	return userAction(ui, func(r *http.Request, id uint) (any, error) {
		return map[string]any{"user_id": id, "role": enums.RoleUser}, userSvc.Demote(r.Context(), id)
	})
}

func DeleteUser(userSvc users.Service, ui *UI) http.HandlerFunc {
	return userAction(ui, func(r *http.Request, id uint) (any, error) {
		return map[string]any{"user_id": id, "deleted": true}, userSvc.Delete(r.Context(), id)
	})
}

func ToggleUnsubscribe(userSvc users.Service, ui *UI) http.HandlerFunc {
	return userAction(ui, func(r *http.Request, id uint) (any, error) {
		next, err := userSvc.ToggleUnsubscribe(r.Context(), id)
		return map[string]any{"user_id": id, "unsubscribed": next}, err
	})
}

type metricsForm struct {
	UserID  uint  `json:"user_id" form:"user_id" validate:"required"`
	Likes   int64 `json:"likes" form:"likes"`
	Follows int64 `json:"follows" form:"follows"`
}

// AppendMetrics adds clamped deltas on top of the latest snapshot.
func AppendMetrics(userSvc users.Service, growthSvc growth.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body metricsForm
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		if _, err := userSvc.Principal(r.Context(), body.UserID); err != nil {
			ui.fail(w, r, err)
			return
		}
		m, err := growthSvc.Append(r.Context(), body.UserID, growth.Delta{Likes: body.Likes, Follows: body.Follows})
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		staffDone(w, r, m)
	}
}

func CloseTicket(ticketSvc tickets.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		if err := ticketSvc.Close(r.Context(), id); err != nil {
			ui.fail(w, r, err)
			return
		}
		staffDone(w, r, map[string]any{"ticket_id": id, "status": enums.TicketStatusClosed})
	}
}

func UpdateStatus(userSvc users.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		var body users.StatusInput
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		if err := userSvc.UpdateStatus(r.Context(), id, body); err != nil {
			ui.fail(w, r, err)
			return
		}
		staffDone(w, r, body)
	}
}

func UpdateTargets(userSvc users.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		var body users.TargetsInput
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		if err := userSvc.UpdateTargets(r.Context(), id, body); err != nil {
			ui.fail(w, r, err)
			return
		}
		staffDone(w, r, body)
	}
}
