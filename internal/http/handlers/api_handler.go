package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taketora/internal/currency"
	"taketora/internal/log"
	"taketora/internal/shipping"
	"taketora/internal/validate"
)

// APIHandler serves the JSON helpers behind the product page widgets.
type APIHandler struct{}

// Currency converts ?amount= JPY to ?currency= (alias ?to=, default USD),
// or to every supported currency when the target is "all".
func (h *APIHandler) Currency(c *fiber.Ctx) error {
	target := c.Query("currency", c.Query("to"))
	amount, ok := validate.Amount(c.Query("amount"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "amount"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a non-negative integer (JPY)"})
	}
	if target == "all" {
		return c.JSON(fiber.Map{"amount": amount, "quotes": currency.Quote(amount)})
	}
	code, ok := validate.Currency(target)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "currency"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported currency"})
	}
	v := currency.Convert(amount, code)
	return c.JSON(fiber.Map{
		"amount": amount,
		"quote": currency.Amount{
			Code:    code,
			Symbol:  currency.Symbol(code),
			Value:   v,
			Display: currency.Format(v, code),
		},
	})
}

func (h *APIHandler) Shipping(c *fiber.Ctx) error {
	w, ok := validate.Weight(c.Query("weight"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "weight"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "weight must be 0-100000 grams"})
	}
	country, ok := validate.Country(c.Query("country"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "country"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported country"})
	}
	return c.JSON(fiber.Map{
		"weight":  w,
		"country": country,
		"options": shipping.Calculate(w, country),
	})
}
