package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taketora/internal/log"
	"taketora/internal/repos"
	"taketora/internal/services"
	"taketora/internal/validate"
)

type InventoryHandler struct {
	Catalog *services.CatalogService
}

// Check reports the derived availability of one product,
// /api/v1/availability?category=&slug=.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	t, ok := repos.TableForSlug(c.Query("category"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown category",
		})
	}
	slug, ok := validate.Slug(c.Query("slug"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid slug",
		})
	}

	avail, err := h.Catalog.Availability(c.UserContext(), t, slug)
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		log.Error(c, "inventory.check.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "availability unavailable",
		})
	}
	return c.JSON(avail)
}
