package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/config"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	modelHandler *handlers.ModelHandler,
	favoriteHandler *handlers.FavoriteHandler,
	bookingHandler *handlers.BookingHandler,
	dashboardHandler *handlers.DashboardHandler,
	adminUserHandler *handlers.AdminUserHandler,
	healthHandler *handlers.HealthHandler,
) {
	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired()

	// Auth: 10 req/min per IP
	auth := app.Group("/auth", rateLimit(10))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	adminAuth := app.Group("/admin/auth", rateLimit(10))
	adminAuth.Post("/login", authHandler.AdminLogin)

	// Catalog: reads are public, writes need an admin token.
	catalog := app.Group("/models")
	catalog.Get("/local", modelHandler.ListLocal)
	catalog.Get("/foreign", modelHandler.ListForeign)
	catalog.Get("/:id", modelHandler.Get)
	catalog.Post("/local", jwt, admin, modelHandler.CreateLocal)
	catalog.Post("/foreign", jwt, admin, modelHandler.CreateForeign)
	catalog.Put("/:id", jwt, admin, modelHandler.Update)
	catalog.Delete("/:id", jwt, admin, modelHandler.Delete)

	// General API rate limit: 60 req/min per IP
	api := app.Group("/api", rateLimit(60))
	api.Get("/health", healthHandler.Check)

	api.Post("/users/favorites/add", jwt, favoriteHandler.Add)
	api.Post("/users/favorites/remove", jwt, favoriteHandler.Remove)
	api.Get("/users/:userId/favorites", jwt, favoriteHandler.List)

	bookings := api.Group("/bookings", jwt)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/:id", bookingHandler.Get)
	bookings.Put("/:id/status", bookingHandler.UpdateStatus)
	bookings.Delete("/:id", bookingHandler.Delete)

	api.Get("/dashboard/stats", dashboardHandler.Stats)
	api.Get("/dashboard/activity", jwt, admin, dashboardHandler.Activity)

	adminAPI := api.Group("/admin", jwt, admin)
	adminAPI.Get("/users", adminUserHandler.List)
	adminAPI.Delete("/users/:id", adminUserHandler.Delete)
	adminAPI.Get("/models", modelHandler.ListAll)
	adminAPI.Post("/favorites/reconcile", favoriteHandler.Reconcile)
}
