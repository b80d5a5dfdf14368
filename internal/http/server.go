// Package httpserver assembles the Fiber application: middleware, routes
// and the embedded templates.
package httpserver

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"taketora/internal/config"
	"taketora/internal/http/handlers"
	applog "taketora/internal/log"
	"taketora/internal/metrics"
	"taketora/internal/services"
	"taketora/web"
)

// MaxBody caps request bodies; the only POSTs are small forms.
const MaxBody = 1 << 20

type Options struct {
	Config  config.Config
	Catalog *services.CatalogService
	Blog    *services.BlogService

	// Requests per minute per IP across pages, and per 30s on the JSON API.
	PageLimit int
	APILimit  int

	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

func (o Options) pageLimit() int {
	if o.PageLimit > 0 {
		return o.PageLimit
	}
	return 120
}

func (o Options) apiLimit() int {
	if o.APILimit > 0 {
		return o.APILimit
	}
	return 30
}

// Engine loads the embedded templates with the site's helper funcs.
func Engine(dev bool) *html.Engine {
	engine := html.NewFileSystem(web.Templates(), ".html")
	engine.AddFuncMap(handlers.Funcs())
	engine.Reload(dev)
	return engine
}

// ErrorHandler logs the cause and shows a friendly page. 404s raised by
// routing get the not-found page instead.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		return handlers.NotFound(c)
	}
	applog.Error(c, "server.error", err, nil)
	if rerr := handlers.Failure(c, fiber.StatusInternalServerError, "error.generic"); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func New(o Options) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 Engine(!o.Config.Production()),
		ErrorHandler:          ErrorHandler,
		BodyLimit:             MaxBody,
		DisableStartupMessage: true,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if o.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{
		// JSON-LD lives in inline script tags
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' https: data:; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'",
	}))
	app.Use(metrics.Middleware())
	app.Use(limiter.New(limiter.Config{
		Max:        o.pageLimit(),
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || p == "/healthz" || p == "/metrics" || isAPI(c)
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.page.hit", nil)
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
	}))
	app.Use(csrf.New(csrf.Config{
		Next:           isAPI,
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   o.Config.Production(),
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return handlers.Failure(c, fiber.StatusForbidden, "error.csrf")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static & infra ----------
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static(), MaxAge: 3600}))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	deps := handlers.NewDeps(o.Config, o.Catalog, o.Blog)

	app.Get("/sitemap.xml", deps.SEOHandler.Sitemap)
	app.Get("/robots.txt", deps.SEOHandler.Robots)
	app.Get("/manifest.webmanifest", deps.SEOHandler.Manifest)
	app.Get("/", handlers.RootRedirect)

	// ---------- API ----------
	api := app.Group("/api/v1", limiter.New(limiter.Config{
		Max:        o.apiLimit(),
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|api"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	api.Get("/availability", deps.InventoryHandler.Check)
	api.Get("/currency", deps.APIHandler.Currency)
	api.Get("/shipping", deps.APIHandler.Shipping)
	api.Post("/cart", deps.CartHandler.AddJSON)
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	// ---------- Localized pages ----------
	site := app.Group("/:locale", handlers.LocaleGuard)
	site.Get("/", deps.CatalogHandler.Home)
	site.Get("/collection", deps.CatalogHandler.Collection)
	site.Get("/blog", deps.BlogHandler.List)
	site.Get("/blog/:slug", deps.BlogHandler.Post)
	site.Get("/visit", deps.PageHandler.Visit)
	site.Post("/cart", deps.CartHandler.Add)
	site.Get("/:category", deps.CatalogHandler.List)
	site.Get("/:category/:product", deps.ProductHandler.Detail)

	app.Use(handlers.NotFound)
	return app
}
