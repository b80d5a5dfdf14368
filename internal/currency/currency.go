// Package currency converts shop prices (always JPY) into a few display
// currencies. Rates are static; converted amounts are informational only.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	JPY = "JPY"
)

// 1 JPY expressed in the target currency.
var rates = map[string]decimal.Decimal{
	USD: decimal.RequireFromString("0.0067"),
	EUR: decimal.RequireFromString("0.0062"),
	GBP: decimal.RequireFromString("0.0053"),
	JPY: decimal.NewFromInt(1),
}

var symbols = map[string]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
}

var order = []string{USD, EUR, GBP, JPY}

// Amount is one converted price.
type Amount struct {
	Code    string  `json:"code"`
	Symbol  string  `json:"symbol"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Supported lists the converter currencies in display order.
func Supported() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Known reports whether code has a rate.
func Known(code string) bool {
	_, ok := rates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Convert maps amountJPY into code, rounded to 2 decimals. Unknown codes use
// a rate of 1.
func Convert(amountJPY int64, code string) float64 {
	rate, ok := rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		rate = decimal.NewFromInt(1)
	}
	v, _ := decimal.NewFromInt(amountJPY).Mul(rate).Round(2).Float64()
	return v
}

// Symbol returns the display symbol, or the code itself when unknown.
func Symbol(code string) string {
	if s, ok := symbols[strings.ToUpper(code)]; ok {
		return s
	}
	return code
}

var printer = message.NewPrinter(language.English)

// Format renders amount with its symbol and thousands grouping. Yen has no
// minor unit.
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	if code == JPY {
		return Symbol(code) + printer.Sprintf("%.0f", amount)
	}
	return Symbol(code) + printer.Sprintf("%.2f", amount)
}

// Quote converts amountJPY into every supported currency.
func Quote(amountJPY int64) []Amount {
	out := make([]Amount, 0, len(order))
	for _, code := range order {
		v := Convert(amountJPY, code)
		out = append(out, Amount{Code: code, Symbol: Symbol(code), Value: v, Display: Format(v, code)})
	}
	return out
}
