package handlers

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"taketora/internal/catalog"
	"taketora/internal/currency"
	"taketora/internal/domain"
	"taketora/internal/i18n"
	"taketora/internal/repos"
	"taketora/internal/seo"
)

const layout = "layouts/main"

// NavItem is one header link.
type NavItem struct {
	Href   string
	Label  string
	Active bool
}

// Locale reads the locale the route guard stored; pages outside the
// locale tree get the default.
func Locale(c *fiber.Ctx) i18n.Locale {
	if s, ok := c.Locals("locale").(string); ok {
		if l, ok := i18n.Parse(s); ok {
			return l
		}
	}
	return i18n.Default
}

func nav(c *fiber.Ctx, loc i18n.Locale) []NavItem {
	items := []struct{ key, path string }{
		{"nav.home", ""},
		{"nav.collection", "/collection"},
		{"nav.antique", "/" + repos.Antique.Slug()},
		{"nav.animeFigures", "/" + repos.AnimeFigure.Slug()},
		{"nav.pokemon", "/" + repos.Pokemon.Slug()},
		{"nav.blog", "/blog"},
		{"nav.visit", "/visit"},
	}
	current := strings.TrimRight(c.Path(), "/")
	out := make([]NavItem, len(items))
	for i, it := range items {
		href := seo.LocalePath(loc, it.path)
		active := current == href
		if it.path != "" && strings.HasPrefix(current, href+"/") {
			active = true
		}
		out[i] = NavItem{Href: href, Label: i18n.T(loc, it.key), Active: active}
	}
	return out
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	loc := Locale(c)
	data["Locale"] = loc
	data["Other"] = loc.Other()
	data["SwitchURL"] = i18n.SwitchPath(c.Path(), loc.Other())
	data["Nav"] = nav(c, loc)
	data["Year"] = time.Now().Year()
	if _, ok := data["Meta"]; !ok {
		title, desc := seo.PageMeta("home", loc)
		data["Meta"] = seo.Meta{Title: title, Description: desc}
	}

	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data, layout)
}

// scripts serializes JSON-LD blocks for the layout's <head>.
func scripts(vs ...any) []template.JS {
	out := make([]template.JS, 0, len(vs))
	for _, v := range vs {
		out = append(out, seo.Script(v))
	}
	return out
}

// NotFound renders the localized 404 page.
func NotFound(c *fiber.Ctx) error {
	loc := Locale(c)
	c.Status(fiber.StatusNotFound)
	return render(c, "notfound", fiber.Map{
		"Meta":    seo.NotFoundMeta(loc),
		"Message": i18n.T(loc, "notFound.body"),
	})
}

// Failure renders the friendly error page with a localized message.
func Failure(c *fiber.Ctx, status int, key string) error {
	loc := Locale(c)
	c.Status(status)
	return render(c, "notfound", fiber.Map{
		"Meta":    seo.NotFoundMeta(loc),
		"Heading": i18n.T(loc, "error.title"),
		"Message": i18n.T(loc, key),
	})
}

// Funcs are the helpers every template may call.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"t": func(loc i18n.Locale, key string) string { return i18n.T(loc, key) },
		"tf": func(loc i18n.Locale, key string, kv ...any) string {
			vars := map[string]any{}
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					vars[k] = kv[i+1]
				}
			}
			return i18n.Tf(loc, key, vars)
		},
		"yen":   func(loc i18n.Locale, n int64) string { return i18n.Yen(loc, n) },
		"count": func(loc i18n.Locale, n int) string { return i18n.ProductCount(loc, n) },
		"label": func(key string, loc i18n.Locale, combined bool) string { return catalog.Label(key, loc, combined) },
		"lp":    func(loc i18n.Locale, path string) string { return seo.LocalePath(loc, path) },
		"quote": currency.Quote,
		"productPath": func(p domain.Product) string {
			return "/" + repos.Table(p.Table).Slug() + "/" + url.PathEscape(p.Slug)
		},
		"postPath": func(slug string) string { return "/blog/" + url.PathEscape(slug) },
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
		"typeName": func(loc i18n.Locale, t repos.Table) string {
			return i18n.T(loc, "collection.productTypes."+t.Slug())
		},
		"date": func(loc i18n.Locale, ts time.Time) string {
			if ts.IsZero() {
				return ""
			}
			if loc == i18n.JA {
				return ts.Format("2006年1月2日")
			}
			return ts.Format("January 2, 2006")
		},
		// CMS content is authored by shop staff in WordPress.
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}
}
