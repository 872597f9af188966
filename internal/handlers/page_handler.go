package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/search"
	"github.com/homefront-labs/realty-backend/internal/services"
)

// PageHandler renders the home, about, and search pages.
type PageHandler struct {
	listings *services.ListingService
}

func NewPageHandler(listings *services.ListingService) *PageHandler {
	return &PageHandler{listings: listings}
}

// Home shows the three most recently listed properties.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	recent, err := h.listings.Recent()
	if err != nil {
		slog.Error("failed to load recent listings", "error", err)
		return fiber.ErrInternalServerError
	}
	return c.Render("index", fiber.Map{
		"Title":    "Homefront Realty",
		"Listings": recent,
		"Flash":    PopFlash(c),
		"User":     c.Locals("user"),
	}, "layouts/main")
}

// About lists the agency's realtors, MVPs first.
func (h *PageHandler) About(c *fiber.Ctx) error {
	realtors, err := h.listings.Realtors()
	if err != nil {
		slog.Error("failed to load realtors", "error", err)
		return fiber.ErrInternalServerError
	}
	return c.Render("about", fiber.Map{
		"Title":    "About Us",
		"Realtors": realtors,
		"Flash":    PopFlash(c),
		"User":     c.Locals("user"),
	}, "layouts/main")
}

// Search renders the form and, when any criterion arrives by GET query or
// form POST, the filtered results. Blank or malformed criteria are dropped
// rather than erroring, so an empty submission lists the full catalog.
func (h *PageHandler) Search(c *fiber.Ctx) error {
	var form dto.SearchForm
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&form); err != nil {
			return fiber.ErrBadRequest
		}
	} else {
		if err := c.QueryParser(&form); err != nil {
			return fiber.ErrBadRequest
		}
	}

	filter := search.Parse(form.Keywords, form.City, form.State, form.Bedrooms, form.MaxPrice)
	results, err := h.listings.Search(filter)
	if err != nil {
		slog.Error("listing search failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("search", fiber.Map{
		"Title":    "Search Listings",
		"Form":     form,
		"Listings": results,
		"Flash":    PopFlash(c),
		"User":     c.Locals("user"),
	}, "layouts/main")
}
