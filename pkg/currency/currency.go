// Package currency converts USD plan prices for display.
package currency

import (
	"fmt"

	"github.com/growly/growly-web/pkg/enums"
	"github.com/shopspring/decimal"
)

// usdValue is the USD value of one unit of each currency.
var usdValue = map[enums.Currency]decimal.Decimal{
	enums.CurrencyUSD: decimal.NewFromInt(1),
	enums.CurrencyEUR: decimal.RequireFromString("1.08"),
	enums.CurrencyGBP: decimal.RequireFromString("1.27"),
	enums.CurrencyCAD: decimal.RequireFromString("0.73"),
	enums.CurrencyAUD: decimal.RequireFromString("0.66"),
}

var symbols = map[enums.Currency]string{
	enums.CurrencyUSD: "$",
	enums.CurrencyEUR: "€",
	enums.CurrencyGBP: "£",
	enums.CurrencyCAD: "CA$",
	enums.CurrencyAUD: "A$",
}

// Convert moves amount from one currency to another, rounded to cents.
func Convert(amount decimal.Decimal, from, to enums.Currency) (decimal.Decimal, error) {
	fromRate, ok := usdValue[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("unsupported currency %q", from)
	}
	toRate, ok := usdValue[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("unsupported currency %q", to)
	}
	usd := amount.Mul(fromRate)
	return usd.DivRound(toRate, 2), nil
}

// FromUSD converts a stored USD price into to, falling back to USD for
// unknown currencies. It returns the currency actually used.
func FromUSD(amount decimal.Decimal, to enums.Currency) (decimal.Decimal, enums.Currency) {
	converted, err := Convert(amount, enums.CurrencyUSD, to)
	if err != nil {
		return amount.Round(2), enums.CurrencyUSD
	}
	return converted, to
}

// Format renders amount with the currency symbol and two decimals.
func Format(amount decimal.Decimal, c enums.Currency) string {
	symbol, ok := symbols[c]
	if !ok {
		return amount.StringFixed(2) + " " + c.String()
	}
	return symbol + amount.StringFixed(2)
}
