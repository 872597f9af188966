package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/homefront-labs/realty-backend/internal/services"
)

// ListingHandler renders the catalog and detail views.
type ListingHandler struct {
	listings *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// Index shows the full catalog, newest first.
func (h *ListingHandler) Index(c *fiber.Ctx) error {
	listings, err := h.listings.All()
	if err != nil {
		slog.Error("failed to load listings", "error", err)
		return fiber.ErrInternalServerError
	}
	return c.Render("listings", fiber.Map{
		"Title":    "Browse Listings",
		"Listings": listings,
		"Flash":    PopFlash(c),
		"User":     c.Locals("user"),
	}, "layouts/main")
}

// Show renders one listing, or the not-found page when the id does not
// resolve.
func (h *ListingHandler) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	listing, err := h.listings.ByID(uint(id))
	if errors.Is(err, services.ErrListingNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		slog.Error("failed to load listing", "listing_id", id, "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("listing", fiber.Map{
		"Title":   listing.Title,
		"Listing": listing,
		"Flash":   PopFlash(c),
		"User":    c.Locals("user"),
	}, "layouts/main")
}
