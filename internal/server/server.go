package server

import (
	"log/slog"
	"net/url"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/config"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/routes"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/storage"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Options tweak the app for the environment it runs in.
type Options struct {
	AccessLog bool
}

// New wires services, handlers and middleware into a Fiber app.
func New(cfg *config.Config, db *gorm.DB, store storage.BlobStore, opts Options) *fiber.App {
	photoService := services.NewPhotoService(store, cfg.MaxUploadBytes)
	authService := services.NewAuthService(db, cfg, photoService)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	healthHandler := handlers.NewHealthHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(db), services.NewTagService(db))
	ingredientHandler := handlers.NewIngredientHandler(services.NewIngredientService(db, photoService))
	recipeHandler := handlers.NewRecipeHandler(services.NewRecipeService(db, photoService))
	inventoryHandler := handlers.NewInventoryHandler(services.NewInventoryService(db, photoService))
	batchHandler := handlers.NewBatchHandler(services.NewBatchService(db))

	// Multipart bodies carry the photo on top of the form fields.
	bodyLimit := int(cfg.MaxUploadBytes) + 1<<20

	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.Metrics())
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	if mem, ok := store.(*storage.MemoryStore); ok {
		app.Get("/blobs/*", blobHandler(mem))
	}

	routes.Setup(app, cfg, authService,
		authHandler, healthHandler, dashboardHandler,
		ingredientHandler, recipeHandler, inventoryHandler, batchHandler)

	return app
}

// blobHandler serves photos held by the memory store.
func blobHandler(store *storage.MemoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := url.PathUnescape(c.Params("*"))
		if err != nil {
			return fiber.ErrNotFound
		}
		body, contentType, err := store.Get(key)
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.SendStream(body)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID))
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
