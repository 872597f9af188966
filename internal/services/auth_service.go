package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homefront-labs/realty-backend/internal/dto"
	"github.com/homefront-labs/realty-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingFields      = errors.New("username, email and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("invalid or expired session")
)

// AuthService manages credential records and server-side sessions. The
// browser cookie holds an opaque random token; only its sha256 digest is
// stored, and logout revokes the row.
type AuthService struct {
	db            *gorm.DB
	sessionExpiry time.Duration
}

func NewAuthService(db *gorm.DB, sessionExpiry time.Duration) *AuthService {
	return &AuthService{db: db, sessionExpiry: sessionExpiry}
}

// Register creates a User plus its empty UserProfile in one transaction.
// Nothing is created when the confirmation does not match or the username
// is taken.
func (s *AuthService) Register(form dto.RegisterForm) (*models.User, error) {
	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)
	if username == "" || email == "" || form.Password == "" {
		return nil, ErrMissingFields
	}
	if form.Password != form.Password2 {
		return nil, ErrPasswordMismatch
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		Username:  username,
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Email:     email,
		Password:  string(hash),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login verifies credentials and opens a session, returning the raw
// session token for the cookie. The error never reveals whether the
// username exists.
func (s *AuthService) Login(form dto.LoginForm) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.TrimSpace(form.Username)).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Logout revokes the session behind the raw token. Revoking an unknown
// token is a no-op.
func (s *AuthService) Logout(token string) error {
	return s.db.Model(&models.Session{}).
		Where("token_hash = ?", hashToken(token)).
		Update("revoked", true).Error
}

// CurrentUser resolves a raw session token to its user. Expired sessions
// are revoked on sight.
func (s *AuthService) CurrentUser(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	var session models.Session
	err := s.db.Where("token_hash = ? AND revoked = false", hashToken(token)).First(&session).Error
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if time.Now().After(session.ExpiresAt) {
		s.db.Model(&session).Update("revoked", true)
		return nil, ErrSessionInvalid
	}

	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, ErrSessionInvalid
	}
	return &user, nil
}

// UpdateProfile sets the bio/phone pair and, when photoPath is non-empty,
// the profile photo reference.
func (s *AuthService) UpdateProfile(userID uuid.UUID, form dto.ProfileForm, photoPath string) error {
	updates := map[string]interface{}{
		"bio":   strings.TrimSpace(form.Bio),
		"phone": strings.TrimSpace(form.Phone),
	}
	if photoPath != "" {
		updates["photo"] = photoPath
	}
	result := s.db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no profile for user %s", userID)
	}
	return nil
}

func (s *AuthService) openSession(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	session := models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.sessionExpiry),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
