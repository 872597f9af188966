package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/homefront-labs/realty-backend/internal/services"
)

const sessionCookie = "session_token"

// LoadUser resolves the session cookie into a user local when present.
// Pages render the signed-in state when the local is set; anonymous
// requests pass through untouched.
func LoadUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(sessionCookie); token != "" {
			if user, err := auth.CurrentUser(token); err == nil {
				c.Locals("user", user)
			}
		}
		return c.Next()
	}
}

// RequireSession redirects unauthenticated requests to the login page
// instead of erroring.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("user") == nil {
			return c.Redirect("/accounts/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
