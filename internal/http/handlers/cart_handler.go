package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"taketora/internal/log"
	"taketora/internal/repos"
	"taketora/internal/seo"
	"taketora/internal/services"
	"taketora/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartRequest struct {
	Category string `json:"category" form:"category"`
	Slug     string `json:"slug" form:"slug"`
	Qty      string `json:"-" form:"qty"`
	QtyNum   int    `json:"qty" form:"-"`
}

func (r cartRequest) qty() int {
	if r.QtyNum != 0 {
		return r.QtyNum
	}
	return validate.Qty(r.Qty)
}

func (h *CartHandler) resolve(c *fiber.Ctx, req cartRequest) (services.CartLine, int, error) {
	t, ok := repos.TableForSlug(req.Category)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return services.CartLine{}, fiber.StatusBadRequest, errors.New("unknown category")
	}
	slug, ok := validate.Slug(req.Slug)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return services.CartLine{}, fiber.StatusBadRequest, errors.New("missing slug")
	}
	line, err := h.Cart.Add(c.UserContext(), t, slug, req.qty())
	switch {
	case errors.Is(err, services.ErrUnavailable):
		log.Info(c, "cart.add.unavailable", map[string]any{"category": t.Slug(), "slug": slug})
		return line, fiber.StatusConflict, err
	case err != nil:
		return line, fiber.StatusNotFound, errors.New("product not found")
	}
	log.Info(c, "cart.add", map[string]any{"category": t.Slug(), "slug": slug, "qty": line.Qty})
	return line, fiber.StatusOK, nil
}

// Add handles the product page form and redirects back to it.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("bad form")
	}
	line, status, err := h.resolve(c, req)
	if err != nil {
		return c.Status(status).SendString(err.Error())
	}
	dest := seo.LocalePath(Locale(c), "/"+line.Table.Slug()+"/"+url.PathEscape(line.Slug))
	return c.Redirect(dest+"?added="+strconv.Itoa(line.Qty), fiber.StatusSeeOther)
}

// AddJSON is the same operation for script clients.
func (h *CartHandler) AddJSON(c *fiber.Ctx) error {
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	line, status, err := h.resolve(c, req)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(line)
}
