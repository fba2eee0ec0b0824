package controllers

import (
	"net/http"

	"github.com/growly/growly-web/api/middleware"
	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/subscribers"
	"github.com/growly/growly-web/internal/tickets"
)

const contactThanks = "Thanks! We will get back to you shortly."

func ContactForm(ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := ui.page(r, "Contact", nil)
		if p := middleware.PrincipalFromContext(r.Context()); p != nil {
			page.Form = map[string]string{"email": p.Email, "instagram": p.Instagram}
		}
		ui.render(w, r, http.StatusOK, "contact", page, map[string]any{})
	}
}

// ContactSubmit files a ticket, linked to the signed-in user when there is one.
func ContactSubmit(svc tickets.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := ui.page(r, "Contact", nil)
		var body tickets.ContactInput
		if err := validators.DecodeRequest(r, &body); err != nil {
			page.Form = formValues(r, "email", "instagram", "subject", "message")
			ui.formError(w, r, "contact", page, err)
			return
		}

		var userID *uint
		if p := middleware.PrincipalFromContext(r.Context()); p != nil {
			id := p.ID
			userID = &id
		}

		ticket, err := svc.Submit(r.Context(), userID, body)
		if err != nil {
			page.Form = map[string]string{"email": body.Email, "instagram": body.Instagram, "subject": body.Subject, "message": body.Message}
			ui.formError(w, r, "contact", page, err)
			return
		}

		page.Notice = contactThanks
		ui.render(w, r, http.StatusCreated, "contact", page, ticket)
	}
}

// Subscribe never reports failure to the client.
func Subscribe(svc subscribers.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var email string
		if validators.IsJSON(r) {
			var body struct {
				Email string `json:"email"`
			}
			if err := validators.DecodeJSONBody(r, &body); err == nil {
				email = body.Email
			}
		} else {
			email = r.PostFormValue("email")
		}
		if _, err := svc.Subscribe(r.Context(), email); err != nil && ui.Logger != nil {
			ui.Logger.Warn(r.Context(), "subscribe.failed", err)
		}
		responses.Redirect(w, r, "/")
	}
}
