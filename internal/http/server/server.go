package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/redis/go-redis/v9"

	"web2pdf/internal/config"
	"web2pdf/internal/http/handlers"
	"web2pdf/internal/http/middleware"
	"web2pdf/internal/infra/cache"
	"web2pdf/internal/infra/logging"
	"web2pdf/internal/infra/upstream"
)

// Deps are the collaborators of the relay app. Redis and Renderer may be nil;
// a nil Renderer is built from Config.Upstream.
type Deps struct {
	Config   config.Config
	Redis    *redis.Client
	Renderer handlers.Renderer
}

// New creates and configures the relay's Fiber app.
func New(d Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		Prefork:               cfg.Server.Prefork,
		DisableStartupMessage: true,
		BodyLimit:             cfg.Limits.MaxBodyBytes,
		ErrorHandler:          errorHandler,
	})

	middleware.Register(app, cfg)
	registerRoutes(app, d)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

func registerRoutes(app *fiber.App, d Deps) {
	renderer := d.Renderer
	if renderer == nil {
		renderer = NewRenderer(d.Config)
	}
	var pdfCache *cache.PDFCache
	if d.Config.Cache.PDFCacheEnabled {
		pdfCache = cache.New(d.Redis, d.Config.Cache.PDFCacheTTL)
	}
	svc := handlers.NewConvertService(d.Config, renderer, pdfCache)

	app.Get("/", handlers.HandleAsset("index.html", "html"))
	app.Get("/script.js", handlers.HandleAsset("script.js", "js"))
	app.Get("/style.css", handlers.HandleAsset("style.css", "css"))
	app.Post("/convert", svc.HandleConvert)

	app.Get("/ops/monitor", monitor.New())
}

// NewRenderer builds the upstream client described by cfg.
func NewRenderer(cfg config.Config) *upstream.Client {
	return upstream.New(cfg.Upstream.URL,
		upstream.WithAPIKey(cfg.Upstream.APIKey),
		upstream.WithTimeout(time.Duration(cfg.Upstream.TimeoutSecs)*time.Second),
		upstream.WithMaxBytes(cfg.Limits.MaxPDFBytes),
	)
}

// errorHandler answers every failure as {"error": "<message>"}, the shape the
// form decodes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
