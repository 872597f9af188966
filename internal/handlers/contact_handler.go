package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/services"
)

// ContactHandler takes buyer inquiries against a listing.
type ContactHandler struct {
	contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit handles POST /contact/:id. Whatever the outcome, the browser is
// redirected back to the listing detail page; the outcome itself travels
// as a flash message so "saved but not emailed" stays distinguishable
// from full success.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}
	back := fmt.Sprintf("/listing/%d", id)

	var form dto.ContactForm
	if err := c.BodyParser(&form); err != nil {
		SetFlash(c, "error", "Invalid form submission")
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	form.ListingID = uint(id)

	outcome, err := h.contacts.Submit(c.Context(), form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			SetFlash(c, "error", verr.Message)
			return c.Redirect(back, fiber.StatusSeeOther)
		case errors.Is(err, services.ErrListingNotFound):
			return fiber.ErrNotFound
		default:
			slog.Error("contact submission failed", "listing_id", id, "error", err)
			SetFlash(c, "error", "Something went wrong, please try again")
			return c.Redirect(back, fiber.StatusSeeOther)
		}
	}

	if outcome.Saved && !outcome.Notified {
		SetFlash(c, "warning", "Your inquiry was recorded but the agent could not be notified yet")
	} else {
		SetFlash(c, "success", "Your inquiry has been sent, a realtor will get back to you soon")
	}
	return c.Redirect(back, fiber.StatusSeeOther)
}
