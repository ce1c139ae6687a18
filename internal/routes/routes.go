package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/config"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	dashboardHandler *handlers.DashboardHandler,
	ingredientHandler *handlers.IngredientHandler,
	recipeHandler *handlers.RecipeHandler,
	inventoryHandler *handlers.InventoryHandler,
	batchHandler *handlers.BatchHandler,
) {
	// General rate limiter: 120 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next:              func(c *fiber.Ctx) bool { return c.Path() == "/health" || c.Path() == "/metrics" },
	}))

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Login and signup: 10 req/min per IP (stricter)
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// The session gate is attached per route or per resource group so it
	// never reaches the public routes above.
	protect := []fiber.Handler{middleware.JWTProtected(cfg), middleware.SessionActive(authService)}
	guarded := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protect...), h)
	}

	app.Get("/session/new", authHandler.LoginForm)
	app.Post("/session", authLimit, authHandler.Login)
	app.Delete("/session", guarded(authHandler.Logout)...)

	app.Post("/users", authLimit, authHandler.Signup)
	app.Delete("/users/me", guarded(authHandler.DeleteAccount)...)

	app.Get("/", guarded(dashboardHandler.Show)...)
	app.Get("/dashboards/show", guarded(dashboardHandler.Show)...)

	tags := app.Group("/tags", protect...)
	tags.Get("/", dashboardHandler.Tags)

	ingredients := app.Group("/ingredients", protect...)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/new", ingredientHandler.New)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/:id", ingredientHandler.Show)
	ingredients.Get("/:id/edit", ingredientHandler.Edit)
	ingredients.Patch("/:id", ingredientHandler.Update)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Delete("/:id", ingredientHandler.Delete)

	recipes := app.Group("/recipes", protect...)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/new", recipeHandler.New)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.Show)
	recipes.Get("/:id/edit", recipeHandler.Edit)
	recipes.Patch("/:id", recipeHandler.Update)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)

	inventory := app.Group("/inventory_items", protect...)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/new", inventoryHandler.New)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/:id", inventoryHandler.Show)
	inventory.Get("/:id/edit", inventoryHandler.Edit)
	inventory.Patch("/:id", inventoryHandler.Update)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	batches := app.Group("/batches", protect...)
	batches.Get("/", batchHandler.List)
	batches.Get("/new", batchHandler.New)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.Show)
	batches.Delete("/:id", batchHandler.Delete)
}
