package controllers

import (
	"context"
	"net/http"

	"github.com/growly/growly-web/internal/plans"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

const homeReviewLimit = 6

type reviewLister interface {
	List(ctx context.Context, limit int) ([]models.Review, error)
}

type homeData struct {
	Plans   []plans.PlanDTO `json:"plans"`
	Reviews []models.Review `json:"reviews"`
}

func Home(planSvc plans.Service, reviews reviewLister, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := planSvc.List(r.Context(), enums.CurrencyUSD)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		rs, err := reviews.List(r.Context(), homeReviewLimit)
		if err != nil {
			ui.fail(w, r, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews"))
			return
		}
		data := homeData{Plans: ps, Reviews: rs}
		ui.render(w, r, http.StatusOK, "home", ui.page(r, "", data), data)
	}
}

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type faqData struct {
	Entries []faqEntry `json:"entries"`
}

var faqEntries = []faqEntry{
	{"Is my account safe?", "We never ask for your password. Growth runs from our own tooling against the handle you give us."},
	{"How fast will I see results?", "Most accounts see new follows within the first week. Your performance page shows daily snapshots."},
	{"Can I pause my plan?", "Yes. Contact us and a staff member will pause automation on your account."},
	{"Which niches do you support?", "Any public account. Tell us your niche, competitors and hashtags after checkout."},
	{"How do I cancel?", "Send a message through the contact form and we will cancel your order."},
}

func FAQ(ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := faqData{Entries: faqEntries}
		ui.render(w, r, http.StatusOK, "faq", ui.page(r, "FAQ", data), data)
	}
}

type pricingData struct {
	Currency enums.Currency  `json:"currency"`
	Plans    []plans.PlanDTO `json:"plans"`
}

// Pricing lists plans. An unknown ?currency falls back to USD.
func Pricing(planSvc plans.Service, ui *UI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := enums.ParseCurrency(r.URL.Query().Get("currency"))
		if err != nil {
			c = enums.CurrencyUSD
		}
		ps, err := planSvc.List(r.Context(), c)
		if err != nil {
			ui.fail(w, r, err)
			return
		}
		data := pricingData{Currency: c, Plans: ps}
		ui.render(w, r, http.StatusOK, "pricing", ui.page(r, "Pricing", data), data)
	}
}
