package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/mailer"
	"github.com/homefront-labs/realty-backend/internal/models"
	"gorm.io/gorm"
)

// ValidationError reports a missing or malformed contact form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Outcome reports the two independently observable results of a contact
// submission: whether the inquiry row was persisted and whether the
// operator notification went out. A caller can distinguish "saved but not
// emailed" from "both succeeded".
type Outcome struct {
	ContactID uint
	Saved     bool
	Notified  bool
	NotifyErr error
}

// ContactService validates, persists, and dispatches buyer inquiries.
type ContactService struct {
	db     *gorm.DB
	mailer mailer.Mailer
	inbox  string
}

func NewContactService(db *gorm.DB, m mailer.Mailer, operatorInbox string) *ContactService {
	return &ContactService{db: db, mailer: m, inbox: operatorInbox}
}

// Submit runs the full intake flow. The Contact row is persisted before
// and independently of the notification, so a mail gateway outage never
// loses an inquiry; the dispatch failure is surfaced in the Outcome
// instead of being swallowed.
func (s *ContactService) Submit(ctx context.Context, form dto.ContactForm) (Outcome, error) {
	if err := validateContactForm(form); err != nil {
		return Outcome{}, err
	}

	var listing models.Listing
	err := s.db.First(&listing, form.ListingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{}, ErrListingNotFound
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve listing %d: %w", form.ListingID, err)
	}

	contact := models.Contact{
		ListingID:    &listing.ID,
		ListingTitle: listing.Title,
		Name:         strings.TrimSpace(form.Name),
		Email:        strings.TrimSpace(form.Email),
		Phone:        strings.TrimSpace(form.Phone),
		Message:      strings.TrimSpace(form.Message),
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return Outcome{}, fmt.Errorf("save contact: %w", err)
	}

	outcome := Outcome{ContactID: contact.ID, Saved: true}

	msg := mailer.Message{
		To:      s.inbox,
		ReplyTo: contact.Email,
		Subject: fmt.Sprintf("Property inquiry: %s", listing.Title),
		Body: fmt.Sprintf(
			"New inquiry for %q.\n\nName: %s\nPhone: %s\n\n%s\n",
			listing.Title, contact.Name, contact.Phone, contact.Message,
		),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Error("contact notification dispatch failed",
			"action", "contact_notify",
			"listing_id", listing.ID,
			"contact_id", contact.ID,
			"error", err,
		)
		outcome.NotifyErr = err
		return outcome, nil
	}

	outcome.Notified = true
	return outcome, nil
}

// ForEmail lists inquiries submitted with the given address, newest first.
// The dashboard uses it to show a user their own submissions.
func (s *ContactService) ForEmail(email string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.Where("email = ?", strings.TrimSpace(email)).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	return contacts, nil
}

func validateContactForm(form dto.ContactForm) error {
	checks := []struct {
		value   string
		field   string
		message string
	}{
		{form.Name, "name", "Name is required"},
		{form.Email, "email", "Email is required"},
		{form.Phone, "phone", "Phone is required"},
		{form.Message, "message", "Message is required"},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &ValidationError{Field: c.field, Message: c.message}
		}
	}
	return nil
}
