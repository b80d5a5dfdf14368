package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taketora/internal/i18n"
	applog "taketora/internal/log"
	"taketora/internal/repos"
	"taketora/internal/seo"
	"taketora/internal/services"
	"taketora/internal/validate"
)

const latestOnHome = 8

type CatalogHandler struct {
	Catalog *services.CatalogService
	BaseURL string
}

func pageKey(t repos.Table) string {
	if t == repos.AnimeFigure {
		return "anime"
	}
	return string(t)
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	loc := Locale(c)
	title, desc := seo.PageMeta("home", loc)
	return render(c, "home", fiber.Map{
		"Meta":   seo.Metadata(h.BaseURL, loc, "", title, desc),
		"JSONLD": scripts(seo.StoreJSONLD(h.BaseURL, loc)),
		"Latest": h.Catalog.Latest(c.UserContext(), latestOnHome),
		"Tables": repos.Tables(),
	})
}

// List is a single table's listing, /{locale}/{category}.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	t, ok := repos.TableForRoute(c.Params("category"))
	if !ok {
		return NotFound(c)
	}
	loc := Locale(c)
	path := "/" + t.Slug()
	trail := seo.NewTrail(loc, seo.Labeled(loc, "breadcrumbs."+t.NavKey(), path))
	title, desc := seo.PageMeta(pageKey(t), loc)

	grouping := h.Catalog.Category(c.UserContext(), t)
	return render(c, "category", fiber.Map{
		"Meta":     seo.Metadata(h.BaseURL, loc, path, title, desc),
		"JSONLD":   scripts(seo.BreadcrumbJSONLD(h.BaseURL, trail)),
		"Trail":    trail,
		"Table":    t,
		"Heading":  i18n.T(loc, t.NavKey()+".pageTitle"),
		"Grouping": grouping,
	})
}

// Collection joins every table; ?category= narrows to one table and
// ?subcategory= to one group key.
func (h *CatalogHandler) Collection(c *fiber.Ctx) error {
	loc := Locale(c)
	sub, ok := validate.Subcategory(c.Query("subcategory"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "subcategory"})
		sub = ""
	}
	filter := services.Filter{Category: c.Query("category"), Subcategory: sub}

	crumbs := []seo.Crumb{seo.Labeled(loc, "breadcrumbs.collection", "/collection")}
	if t, ok := repos.TableForSlug(filter.Category); ok {
		crumbs = append(crumbs, seo.Labeled(loc, "collection.productTypes."+t.Slug(), "/collection?category="+t.Slug()))
	}
	if sub != "" {
		crumbs = append(crumbs, seo.Segment(sub, "/collection?subcategory="+sub))
	}
	trail := seo.NewTrail(loc, crumbs...)
	title, desc := seo.PageMeta("collection", loc)

	return render(c, "collection", fiber.Map{
		"Meta":        seo.Metadata(h.BaseURL, loc, "/collection", title, desc),
		"JSONLD":      scripts(seo.BreadcrumbJSONLD(h.BaseURL, trail)),
		"Trail":       trail,
		"Sections":    h.Catalog.Collection(c.UserContext(), filter),
		"Filter":      filter,
		"Tables":      []repos.Table{repos.AnimeFigure, repos.Pokemon, repos.Antique},
		"Subcategory": sub,
	})
}
