package plans

import (
	"github.com/growly/growly-web/pkg/currency"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	"github.com/shopspring/decimal"
)

// PlanDTO is a plan priced for display.
type PlanDTO struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	Price        decimal.Decimal `json:"price"`
	Currency     enums.Currency  `json:"currency"`
	DisplayPrice string          `json:"display_price"`
	Features     []string        `json:"features"`
}

// FromModel prices p in the requested currency.
func FromModel(p models.Plan, c enums.Currency) PlanDTO {
	price, used := currency.FromUSD(p.Price, c)
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	return PlanDTO{
		ID:           p.ID,
		Name:         p.Name,
		PriceUSD:     p.Price,
		Price:        price,
		Currency:     used,
		DisplayPrice: currency.Format(price, used),
		Features:     features,
	}
}
