package services_test

import (
	"testing"
	"time"

	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/models"
	"github.com/homefront-labs/realty-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.Session{}))
	return db
}

func registerForm() dto.RegisterForm {
	return dto.RegisterForm{
		Username:  "jdoe",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "hunter2hunter2",
		Password2: "hunter2hunter2",
	}
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	user, err := svc.Register(registerForm())
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.NotEqual(t, "hunter2hunter2", user.Password, "password must be hashed")

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestRegister_PasswordMismatchCreatesNothing(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	form := registerForm()
	form.Password2 = "different"
	_, err := svc.Register(form)
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	_, err := svc.Register(registerForm())
	require.NoError(t, err)

	form := registerForm()
	form.Email = "other@example.com"
	_, err = svc.Register(form)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	assert.EqualValues(t, 1, countUsers(t, db))
}

func TestLogin_EstablishesSession(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	_, err := svc.Register(registerForm())
	require.NoError(t, err)

	user, token, err := svc.Login(dto.LoginForm{Username: "jdoe", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogin_FailureIsGeneric(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	_, err := svc.Register(registerForm())
	require.NoError(t, err)

	// A wrong password for a real username and a nonexistent username must
	// be indistinguishable to the caller.
	_, _, badPassword := svc.Login(dto.LoginForm{Username: "jdoe", Password: "wrong"})
	_, _, noSuchUser := svc.Login(dto.LoginForm{Username: "ghost", Password: "wrong"})
	assert.ErrorIs(t, badPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, noSuchUser, services.ErrInvalidCredentials)
	assert.Equal(t, badPassword.Error(), noSuchUser.Error())
}

func TestLogout_RevokesSession(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	_, err := svc.Register(registerForm())
	require.NoError(t, err)
	_, token, err := svc.Login(dto.LoginForm{Username: "jdoe", Password: "hunter2hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	_, err = svc.CurrentUser(token)
	assert.ErrorIs(t, err, services.ErrSessionInvalid)
}

func TestCurrentUser_ExpiredSession(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, -time.Minute)

	_, err := svc.Register(registerForm())
	require.NoError(t, err)
	_, token, err := svc.Login(dto.LoginForm{Username: "jdoe", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = svc.CurrentUser(token)
	assert.ErrorIs(t, err, services.ErrSessionInvalid)
}

func TestUpdateProfile(t *testing.T) {
	db := setupAuthDB(t)
	svc := services.NewAuthService(db, time.Hour)

	user, err := svc.Register(registerForm())
	require.NoError(t, err)

	err = svc.UpdateProfile(user.ID, dto.ProfileForm{Bio: "Looking for a beach house", Phone: "555-222-3333"}, "/uploads/me.jpg")
	require.NoError(t, err)

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Looking for a beach house", profile.Bio)
	assert.Equal(t, "555-222-3333", profile.Phone)
	assert.Equal(t, "/uploads/me.jpg", profile.Photo)
}
