package controllers

import (
	"net/http"

	"github.com/growly/growly-web/api/middleware"
	"github.com/growly/growly-web/api/validators"
	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/plans"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

type checkoutData struct {
	Plan   *plans.PlanDTO `json:"plan"`
	Order  *models.Order  `json:"order,omitempty"`
	Orders []models.Order `json:"orders"`
}

// CheckoutPage shows the plan form above the signed-in user's past orders.
func CheckoutPage(planSvc plans.Service, orderSvc orders.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.QueryID(r, "plan_id")
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		plan, err := planSvc.Get(r.Context(), id, enums.CurrencyUSD)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		data := checkoutData{Plan: plan, Orders: []models.Order{}}
		if p := middleware.PrincipalFromContext(r.Context()); p != nil {
			if data.Orders, err = orderSvc.ListByUser(r.Context(), p.ID); err != nil {
				ui.fail(w, r, err)
				return
			}
		}
		ui.render(w, r, http.StatusOK, "checkout", ui.page(r, "Checkout", data), data)
	}
}

// CheckoutSubmit places an order for the signed-in user and settles it.
func CheckoutSubmit(orderSvc orders.Service, planSvc plans.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			ui.fail(w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to check out"))
			return
		}

		var body orders.CheckoutInput
		if err := validators.DecodeRequest(r, &body); err != nil {
			ui.fail(w, r, err)
			return
		}
		if body.PlanID == 0 {
			ui.fail(w, r, pkgerrors.Validation("plan_id", "plan_id is required"))
			return
		}
		plan, err := planSvc.Get(r.Context(), body.PlanID, enums.CurrencyUSD)
		if err != nil {
			ui.fail(w, r, err)
			return
		}

		order, err := orderSvc.Checkout(r.Context(), p.ID, body)
		if err != nil {
			page := ui.page(r, "Checkout", checkoutData{Plan: plan})
			page.Form = map[string]string{"instagram": body.Instagram, "notes": body.Notes}
			ui.formError(w, r, "checkout", page, err)
			return
		}

		data := checkoutData{Plan: plan, Order: order}
		page := ui.page(r, "Order placed", data)
		page.Notice = "Thank you! Your order is " + order.Status.String() + "."
		ui.render(w, r, http.StatusCreated, "checkout", page, data)
	}
}
