package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/homefront-labs/realty-backend/internal/config"
	"github.com/homefront-labs/realty-backend/internal/handlers"
	"github.com/homefront-labs/realty-backend/internal/mailer"
	"github.com/homefront-labs/realty-backend/internal/models"
	"github.com/homefront-labs/realty-backend/internal/routes"
	"github.com/homefront-labs/realty-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubMailer struct {
	sent []mailer.Message
}

func (m *stubMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	mail *stubMailer
}

func newTestApp(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Realtor{}, &models.Listing{}, &models.Contact{},
		&models.User{}, &models.UserProfile{}, &models.Session{},
	))

	realtor := models.Realtor{Name: "John Smith", Email: "john@realestate.com", HireDate: time.Now()}
	require.NoError(t, db.Create(&realtor).Error)
	listing := models.Listing{
		RealtorID: realtor.ID, Title: "Beautiful Family Home",
		Address: "123 Main Street", City: "Beverly Hills", State: "CA", Zipcode: "90210",
		Description: "Stunning 4-bedroom home with modern amenities",
		Price:       750000, Bedrooms: 4, Bathrooms: 3, Sqft: 2500,
		ListDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&listing).Error)

	cfg := &config.Config{
		SessionExpiry: time.Hour,
		ContactInbox:  "ops@homefront.example",
		TemplateDir:   "../../web/templates",
		StaticDir:     t.TempDir(),
		UploadDir:     t.TempDir(),
	}

	mail := &stubMailer{}
	listingService := services.NewListingService(db)
	contactService := services.NewContactService(db, mail, cfg.ContactInbox)
	authService := services.NewAuthService(db, cfg.SessionExpiry)

	engine := html.New(cfg.TemplateDir, ".html")
	app := fiber.New(fiber.Config{Views: engine})
	routes.Setup(app, cfg, authService,
		handlers.NewPageHandler(listingService),
		handlers.NewListingHandler(listingService),
		handlers.NewContactHandler(contactService),
		handlers.NewAuthHandler(authService, contactService, cfg.UploadDir, cfg.SessionExpiry),
		handlers.NewHealthHandler(),
	)

	return &testEnv{app: app, db: db, mail: mail}
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHomeShowsRecentListings(t *testing.T) {
	env := newTestApp(t)
	resp := get(t, env.app, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Beautiful Family Home")
}

func TestListingDetail(t *testing.T) {
	env := newTestApp(t)

	resp := get(t, env.app, "/listing/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "123 Main Street")

	resp = get(t, env.app, "/listing/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchFiltersResults(t *testing.T) {
	env := newTestApp(t)

	resp := get(t, env.app, "/search?city=Beverly+Hills&bedrooms=4")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Beautiful Family Home")

	resp = get(t, env.app, "/search?bedrooms=7")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "No listings match your search.")
}

func TestContactSubmitRedirectsWithOutcome(t *testing.T) {
	env := newTestApp(t)

	form := url.Values{
		"name":    {"Jane Buyer"},
		"email":   {"jane@example.com"},
		"phone":   {"555-000-1111"},
		"message": {"Still available?"},
	}
	resp := postForm(t, env.app, "/contact/1", form)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/listing/1", resp.Header.Get(fiber.HeaderLocation))
	require.NotNil(t, cookieNamed(resp, "flash"))

	var n int64
	require.NoError(t, env.db.Model(&models.Contact{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	assert.Len(t, env.mail.sent, 1)
}

func TestContactSubmitValidationFailure(t *testing.T) {
	env := newTestApp(t)

	form := url.Values{
		"name":    {""},
		"email":   {"jane@example.com"},
		"phone":   {"555-000-1111"},
		"message": {"Still available?"},
	}
	resp := postForm(t, env.app, "/contact/1", form)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/listing/1", resp.Header.Get(fiber.HeaderLocation))

	var n int64
	require.NoError(t, env.db.Model(&models.Contact{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
	assert.Empty(t, env.mail.sent)
}

func TestContactSubmitUnknownListing(t *testing.T) {
	env := newTestApp(t)

	form := url.Values{
		"name":    {"Jane Buyer"},
		"email":   {"jane@example.com"},
		"phone":   {"555-000-1111"},
		"message": {"Still available?"},
	}
	resp := postForm(t, env.app, "/contact/999", form)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardRequiresSession(t *testing.T) {
	env := newTestApp(t)

	resp := get(t, env.app, "/accounts/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/accounts/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestRegisterLoginDashboardFlow(t *testing.T) {
	env := newTestApp(t)

	register := url.Values{
		"username":   {"jdoe"},
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"email":      {"jane@example.com"},
		"password":   {"hunter2hunter2"},
		"password2":  {"hunter2hunter2"},
	}
	resp := postForm(t, env.app, "/accounts/register", register)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/accounts/login", resp.Header.Get(fiber.HeaderLocation))

	login := url.Values{
		"username": {"jdoe"},
		"password": {"hunter2hunter2"},
	}
	resp = postForm(t, env.app, "/accounts/login", login)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/accounts/dashboard", resp.Header.Get(fiber.HeaderLocation))

	session := cookieNamed(resp, handlers.SessionCookie)
	require.NotNil(t, session)
	require.NotEmpty(t, session.Value)

	req := httptest.NewRequest(http.MethodGet, "/accounts/dashboard", nil)
	req.AddCookie(session)
	dash, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, dash.StatusCode)
	assert.Contains(t, body(t, dash), "Welcome back, Jane Doe")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := newTestApp(t)

	register := url.Values{
		"username":  {"jdoe"},
		"email":     {"jane@example.com"},
		"password":  {"hunter2hunter2"},
		"password2": {"different"},
	}
	resp := postForm(t, env.app, "/accounts/register", register)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/accounts/register", resp.Header.Get(fiber.HeaderLocation))

	var n int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	env := newTestApp(t)

	resp := postForm(t, env.app, "/accounts/login", url.Values{
		"username": {"ghost"},
		"password": {"whatever"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/accounts/login", resp.Header.Get(fiber.HeaderLocation))
}
