package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/mailer"
	"github.com/homefront-labs/realty-backend/internal/models"
	"github.com/homefront-labs/realty-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubMailer struct {
	sent []mailer.Message
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func setupContactDB(t *testing.T) (*gorm.DB, uint) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Realtor{}, &models.Listing{}, &models.Contact{}))

	realtor := models.Realtor{Name: "John Smith", Email: "john@realestate.com", HireDate: time.Now()}
	require.NoError(t, db.Create(&realtor).Error)
	listing := models.Listing{
		RealtorID: realtor.ID, Title: "Beautiful Family Home",
		Address: "123 Main Street", City: "Beverly Hills", State: "CA",
		Price: 750000, Bedrooms: 4, Bathrooms: 3, Sqft: 2500,
		ListDate: time.Now(),
	}
	require.NoError(t, db.Create(&listing).Error)
	return db, listing.ID
}

func validForm(listingID uint) dto.ContactForm {
	return dto.ContactForm{
		ListingID: listingID,
		Name:      "Jane Buyer",
		Email:     "jane@example.com",
		Phone:     "555-000-1111",
		Message:   "Is this property still available?",
	}
}

func countContacts(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&n).Error)
	return n
}

func TestSubmit_Valid(t *testing.T) {
	db, listingID := setupContactDB(t)
	mail := &stubMailer{}
	svc := services.NewContactService(db, mail, "ops@homefront.example")

	outcome, err := svc.Submit(context.Background(), validForm(listingID))
	require.NoError(t, err)
	assert.True(t, outcome.Saved)
	assert.True(t, outcome.Notified)
	assert.NoError(t, outcome.NotifyErr)

	// Exactly one row referencing the submitted listing.
	var contacts []models.Contact
	require.NoError(t, db.Find(&contacts).Error)
	require.Len(t, contacts, 1)
	require.NotNil(t, contacts[0].ListingID)
	assert.Equal(t, listingID, *contacts[0].ListingID)
	assert.Equal(t, "Beautiful Family Home", contacts[0].ListingTitle)

	// Exactly one dispatch, reply-to the submitter, listing title as context.
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ops@homefront.example", mail.sent[0].To)
	assert.Equal(t, "jane@example.com", mail.sent[0].ReplyTo)
	assert.Contains(t, mail.sent[0].Subject, "Beautiful Family Home")
	assert.Contains(t, mail.sent[0].Body, "555-000-1111")
}

func TestSubmit_MissingFieldPersistsNothing(t *testing.T) {
	db, listingID := setupContactDB(t)

	fields := []func(*dto.ContactForm){
		func(f *dto.ContactForm) { f.Name = "" },
		func(f *dto.ContactForm) { f.Email = "  " },
		func(f *dto.ContactForm) { f.Phone = "" },
		func(f *dto.ContactForm) { f.Message = "" },
	}
	for _, blank := range fields {
		mail := &stubMailer{}
		svc := services.NewContactService(db, mail, "ops@homefront.example")

		form := validForm(listingID)
		blank(&form)

		_, err := svc.Submit(context.Background(), form)
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, mail.sent, "no dispatch on validation failure")
	}
	assert.EqualValues(t, 0, countContacts(t, db))
}

func TestSubmit_UnknownListing(t *testing.T) {
	db, _ := setupContactDB(t)
	mail := &stubMailer{}
	svc := services.NewContactService(db, mail, "ops@homefront.example")

	_, err := svc.Submit(context.Background(), validForm(9999))
	assert.ErrorIs(t, err, services.ErrListingNotFound)
	assert.EqualValues(t, 0, countContacts(t, db))
	assert.Empty(t, mail.sent)
}

func TestSubmit_DispatchFailureStillSaves(t *testing.T) {
	db, listingID := setupContactDB(t)
	mail := &stubMailer{err: errors.New("smtp: connection refused")}
	svc := services.NewContactService(db, mail, "ops@homefront.example")

	outcome, err := svc.Submit(context.Background(), validForm(listingID))
	require.NoError(t, err)
	assert.True(t, outcome.Saved)
	assert.False(t, outcome.Notified)
	assert.Error(t, outcome.NotifyErr)

	// The inquiry survives the gateway outage.
	assert.EqualValues(t, 1, countContacts(t, db))
	assert.Len(t, mail.sent, 1)
}

func TestForEmail(t *testing.T) {
	db, listingID := setupContactDB(t)
	svc := services.NewContactService(db, &stubMailer{}, "ops@homefront.example")

	_, err := svc.Submit(context.Background(), validForm(listingID))
	require.NoError(t, err)

	other := validForm(listingID)
	other.Email = "someone.else@example.com"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)

	mine, err := svc.ForEmail("jane@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
