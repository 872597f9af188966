package services

import (
	"errors"
	"fmt"

	"github.com/homefront-labs/realty-backend/internal/models"
	"github.com/homefront-labs/realty-backend/internal/search"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

// recentLimit caps the home page "just listed" strip.
const recentLimit = 3

// ListingService reads the listing catalog. Listings are seeded by the
// import command and read-only from here.
type ListingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

// All returns the full catalog, newest first.
func (s *ListingService) All() ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.Preload("Realtor").
		Order("list_date DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	return listings, nil
}

// Recent returns the three most recently listed properties.
func (s *ListingService) Recent() ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.Preload("Realtor").
		Order("list_date DESC").
		Limit(recentLimit).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("load recent listings: %w", err)
	}
	return listings, nil
}

// ByID loads one listing with its realtor.
func (s *ListingService) ByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.Preload("Realtor").First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load listing %d: %w", id, err)
	}
	return &listing, nil
}

// Search applies the filter to the catalog. An empty filter returns the
// full collection in natural storage order.
func (s *ListingService) Search(f search.Filter) ([]models.Listing, error) {
	var listings []models.Listing
	err := f.Apply(s.db.Model(&models.Listing{})).
		Preload("Realtor").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return listings, nil
}

// Realtors returns all agents, MVPs first, for the about page.
func (s *ListingService) Realtors() ([]models.Realtor, error) {
	var realtors []models.Realtor
	err := s.db.Order("is_mvp DESC, hire_date ASC").Find(&realtors).Error
	if err != nil {
		return nil, fmt.Errorf("load realtors: %w", err)
	}
	return realtors, nil
}
