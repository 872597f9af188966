package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/homefront-labs/realty-backend/internal/config"
	"github.com/homefront-labs/realty-backend/internal/handlers"
	"github.com/homefront-labs/realty-backend/internal/middleware"
	"github.com/homefront-labs/realty-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	pageHandler *handlers.PageHandler,
	listingHandler *handlers.ListingHandler,
	contactHandler *handlers.ContactHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Session state is attached globally so every page can render the
	// signed-in menu.
	app.Use(middleware.LoadUser(authService))

	app.Get("/health", healthHandler.Check)

	// Site pages
	app.Get("/", pageHandler.Home)
	app.Get("/about", pageHandler.About)
	app.Get("/search", pageHandler.Search)
	app.Post("/search", pageHandler.Search)

	// Listings
	app.Get("/listings", listingHandler.Index)
	app.Get("/listing/:id", listingHandler.Show)
	app.Post("/contact/:id", contactHandler.Submit)

	// Accounts. Credential endpoints get a stricter per-IP rate limit.
	accounts := app.Group("/accounts")
	accounts.Use(limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	accounts.Get("/login", authHandler.LoginPage)
	accounts.Post("/login", authHandler.Login)
	accounts.Get("/register", authHandler.RegisterPage)
	accounts.Post("/register", authHandler.Register)
	accounts.Post("/logout", authHandler.Logout)
	accounts.Get("/dashboard", middleware.RequireSession(), authHandler.Dashboard)
	accounts.Post("/profile", middleware.RequireSession(), authHandler.UpdateProfile)

	// Assets
	app.Static("/static", cfg.StaticDir)
	app.Static("/uploads", cfg.UploadDir)
}
