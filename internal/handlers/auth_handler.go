package handlers

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/models"
	"github.com/homefront-labs/realty-backend/internal/services"
)

// SessionCookie names the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// AuthHandler serves the register/login/logout/dashboard flows.
type AuthHandler struct {
	auth          *services.AuthService
	contacts      *services.ContactService
	uploadDir     string
	sessionExpiry time.Duration
}

func NewAuthHandler(auth *services.AuthService, contacts *services.ContactService, uploadDir string, sessionExpiry time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, contacts: contacts, uploadDir: uploadDir, sessionExpiry: sessionExpiry}
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login",
		"Flash": PopFlash(c),
		"User":  c.Locals("user"),
	}, "layouts/main")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		SetFlash(c, "error", "Invalid form submission")
		return c.Redirect("/accounts/login", fiber.StatusSeeOther)
	}

	_, token, err := h.auth.Login(form)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			SetFlash(c, "error", "Invalid username or password")
			return c.Redirect("/accounts/login", fiber.StatusSeeOther)
		}
		slog.Error("login failed", "error", err)
		return fiber.ErrInternalServerError
	}

	h.setSessionCookie(c, token, time.Now().Add(h.sessionExpiry))
	SetFlash(c, "success", "Login successful")
	return c.Redirect("/accounts/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{
		"Title": "Register",
		"Flash": PopFlash(c),
		"User":  c.Locals("user"),
	}, "layouts/main")
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		SetFlash(c, "error", "Invalid form submission")
		return c.Redirect("/accounts/register", fiber.StatusSeeOther)
	}

	if _, err := h.auth.Register(form); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			SetFlash(c, "warning", "Passwords do not match")
		case errors.Is(err, services.ErrUsernameTaken):
			SetFlash(c, "warning", "That username is already taken")
		case errors.Is(err, services.ErrMissingFields):
			SetFlash(c, "warning", "Username, email and password are required")
		default:
			slog.Error("registration failed", "error", err)
			SetFlash(c, "error", "Failed to create user")
		}
		return c.Redirect("/accounts/register", fiber.StatusSeeOther)
	}

	SetFlash(c, "success", "User created successfully, you can now log in")
	return c.Redirect("/accounts/login", fiber.StatusSeeOther)
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(SessionCookie); token != "" {
		if err := h.auth.Logout(token); err != nil {
			slog.Error("logout failed", "error", err)
		}
	}
	h.setSessionCookie(c, "", time.Now().Add(-time.Hour))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Dashboard shows the signed-in user's profile and their submitted
// inquiries. RequireSession guarantees the user local is set.
func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	inquiries, err := h.contacts.ForEmail(user.Email)
	if err != nil {
		slog.Error("failed to load dashboard inquiries", "user_id", user.ID.String(), "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("dashboard", fiber.Map{
		"Title":     "Dashboard",
		"User":      user,
		"Inquiries": inquiries,
		"Flash":     PopFlash(c),
	}, "layouts/main")
}

// UpdateProfile saves bio/phone and an optional photo upload.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var form dto.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		SetFlash(c, "error", "Invalid form submission")
		return c.Redirect("/accounts/dashboard", fiber.StatusSeeOther)
	}

	var photoPath string
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			SetFlash(c, "error", "Profile photo must be a jpg, png or webp image")
			return c.Redirect("/accounts/dashboard", fiber.StatusSeeOther)
		}
		name := uuid.New().String() + ext
		if err := c.SaveFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			slog.Error("profile photo upload failed", "user_id", user.ID.String(), "error", err)
			SetFlash(c, "error", "Could not save the uploaded photo")
			return c.Redirect("/accounts/dashboard", fiber.StatusSeeOther)
		}
		photoPath = "/uploads/" + name
	}

	if err := h.auth.UpdateProfile(user.ID, form, photoPath); err != nil {
		slog.Error("profile update failed", "user_id", user.ID.String(), "error", err)
		SetFlash(c, "error", "Could not update your profile")
		return c.Redirect("/accounts/dashboard", fiber.StatusSeeOther)
	}

	SetFlash(c, "success", "Profile updated")
	return c.Redirect("/accounts/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
