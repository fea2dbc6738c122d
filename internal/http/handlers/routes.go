package handlers

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"

	applog "shelflife/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Options struct {
	Views fiber.Views
	// AccessLog receives one line per request; nil turns access logging off.
	AccessLog io.Writer
	// RateLimit is requests per minute per client, 60 when zero.
	RateLimit int
}

// NewApp builds the Fiber app with middleware and every route mounted.
func NewApp(d *Deps, opts Options) *fiber.App {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}
	app := fiber.New(fiber.Config{
		Views:       opts.Views,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			if isAPI(c) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.", "Q": "",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: opts.AccessLog}))
	}
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        opts.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		// The JSON API and the cron hook are called by scripts, not forms.
		Next: isAPI,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again.", "Q": ""})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Pages ----------
	app.Get("/", d.DashboardHandler.Home)
	app.Get("/analytics", d.DashboardHandler.AnalyticsPage)
	app.Get("/search", d.SearchHandler.Search)
	app.Get("/scan", d.ProductHandler.Scan)
	app.Get("/expiring", d.ExpiryHandler.Page)
	app.Get("/settings", d.SettingsHandler.Form)
	app.Post("/settings", d.SettingsHandler.Save)

	app.Get("/products", d.ProductHandler.List)
	app.Post("/products", d.ProductHandler.Create)
	app.Get("/products/add", d.ProductHandler.AddForm)
	app.Get("/products/:id", d.ProductHandler.Detail)
	app.Post("/products/:id", d.ProductHandler.Update)
	app.Get("/products/:id/edit", d.ProductHandler.EditForm)
	app.Post("/products/:id/delete", d.ProductHandler.Delete)

	// ---------- API ----------
	app.Get("/api/cron/check-expiry", d.ExpiryHandler.CronCheck)

	api := app.Group("/api/v1")
	api.Get("/products", d.APIHandler.List)
	api.Post("/products", d.APIHandler.Create)
	api.Get("/products/expiring", d.APIHandler.Expiring)
	api.Get("/products/expired", d.APIHandler.Expired)
	api.Get("/products/search", d.APIHandler.Search)
	api.Get("/products/export.csv", d.APIHandler.ExportCSV)
	api.Get("/products/barcode/:barcode", d.APIHandler.ByBarcode)
	api.Get("/products/:id", d.APIHandler.Get)
	api.Put("/products/:id", d.APIHandler.Update)
	api.Delete("/products/:id", d.APIHandler.Delete)
	api.Get("/settings", d.APIHandler.GetSettings)
	api.Put("/settings", d.APIHandler.SaveSettings)
	api.Get("/analytics", d.APIHandler.Summary)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if isAPI(c) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return notFound(c, "Page not found")
	})
	return app
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
