package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taketora/internal/i18n"
	"taketora/internal/log"
)

// legacyPages are first path segments served before the site moved under
// a locale prefix.
var legacyPages = map[string]bool{
	"collection":    true,
	"antique":       true,
	"anime-figures": true,
	"pokemon":       true,
	"blog":          true,
	"visit":         true,
}

// LocaleGuard validates the first path segment. Known locales are stored
// in Locals; an old unprefixed page URL redirects to the visitor's
// preferred locale; anything else is a 404.
func LocaleGuard(c *fiber.Ctx) error {
	seg := c.Params("locale")
	if loc, ok := i18n.Parse(seg); ok && seg == string(loc) {
		c.Locals("locale", string(loc))
		return c.Next()
	}
	if legacyPages[seg] {
		loc := i18n.Detect(c.Get(fiber.HeaderAcceptLanguage))
		dest := "/" + string(loc) + c.Path()
		if q := string(c.Request().URI().QueryString()); q != "" {
			dest += "?" + q
		}
		log.Info(c, "locale.redirect", map[string]any{"from": c.Path(), "to": dest})
		return c.Redirect(dest, fiber.StatusFound)
	}
	if loc, ok := i18n.Parse(seg); ok {
		// /JA/visit and friends
		return c.Redirect(i18n.SwitchPath(c.Path(), loc), fiber.StatusMovedPermanently)
	}
	return NotFound(c)
}

// RootRedirect sends / to the visitor's locale home.
func RootRedirect(c *fiber.Ctx) error {
	loc := i18n.Detect(c.Get(fiber.HeaderAcceptLanguage))
	return c.Redirect("/"+string(loc), fiber.StatusFound)
}
