package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"taketora/internal/currency"
	"taketora/internal/domain"
	"taketora/internal/i18n"
	"taketora/internal/log"
	"taketora/internal/repos"
	"taketora/internal/seo"
	"taketora/internal/services"
	"taketora/internal/shipping"
	"taketora/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	BaseURL string
}

// slugKeys lists the lookups for a slug route segment: the decoded value,
// then the raw segment when it differs, since WordPress stores non-ASCII
// slugs percent-encoded. An unusable segment yields none.
func slugKeys(c *fiber.Ctx, param string) []string {
	raw := c.Params(param)
	slug, ok := validate.SlugParam(raw)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": param})
		return nil
	}
	if raw != slug {
		if _, ok := validate.Slug(raw); ok {
			return []string{slug, raw}
		}
	}
	return []string{slug}
}

// Detail is /{locale}/{category}/{product}. The shipping estimate is
// computed server-side from ?weight= and ?country=, defaulting to the
// product's own weight.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	t, ok := repos.TableForRoute(c.Params("category"))
	if !ok {
		return NotFound(c)
	}
	var (
		p   domain.Product
		err = repos.ErrNotFound
	)
	for _, slug := range slugKeys(c, "product") {
		if p, err = h.Catalog.Product(c.UserContext(), t, slug); err == nil {
			break
		}
	}
	if err != nil {
		return NotFound(c)
	}

	loc := Locale(c)
	trail := seo.NewTrail(loc,
		seo.Labeled(loc, "breadcrumbs."+t.NavKey(), "/"+t.Slug()),
		seo.Named(p.Name, "/"+t.Slug()+"/"+url.PathEscape(p.Slug)),
	)

	weight := p.Weight
	if w, ok := validate.Weight(c.Query("weight")); ok && c.Query("weight") != "" {
		weight = w
	}
	country, ok := validate.Country(c.Query("country"))
	if !ok {
		country = "US"
	}

	return render(c, "product", fiber.Map{
		"Meta":      seo.ProductMeta(h.BaseURL, loc, t.Slug(), p),
		"JSONLD":    scripts(seo.ProductJSONLD(h.BaseURL, t.Slug(), p), seo.BreadcrumbJSONLD(h.BaseURL, trail)),
		"Trail":     trail,
		"Table":     t,
		"P":         p,
		"Quote":     currency.Quote(p.Price),
		"Weight":    weight,
		"Country":   country,
		"Countries": shipping.Countries(),
		"Shipping":  shipping.Calculate(weight, country),
		"FreeShip":  i18n.Tf(loc, "product.freeShipping", map[string]any{"amount": i18n.Yen(loc, shipping.FreeShippingThreshold)}),
		"Added":     c.QueryInt("added"),
	})
}
