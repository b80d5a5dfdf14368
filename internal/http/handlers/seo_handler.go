package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taketora/internal/log"
	"taketora/internal/seo"
	"taketora/internal/services"
)

type SEOHandler struct {
	Catalog *services.CatalogService
	Blog    *services.BlogService
	BaseURL string
	Now     func() time.Time
}

func (h *SEOHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Sitemap lists every page in both locales. Upstream outages shrink the
// list instead of failing it.
func (h *SEOHandler) Sitemap(c *fiber.Ctx) error {
	ctx := c.UserContext()
	out, err := seo.Sitemap(h.BaseURL, h.now(), h.Catalog.SitemapProducts(ctx), h.Blog.Slugs(ctx))
	if err != nil {
		log.Error(c, "sitemap.build.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(out)
}

func (h *SEOHandler) Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(seo.Robots(h.BaseURL))
}

func (h *SEOHandler) Manifest(c *fiber.Ctx) error {
	out, err := seo.Manifest()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/manifest+json")
	return c.Send(out)
}
