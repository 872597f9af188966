// Package seed loads the sample catalog used for demos and local
// development: seven realtors and seven listings across California.
package seed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/homefront-labs/realty-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type realtorFixture struct {
	Name        string
	Photo       string
	Description string
	Email       string
	Phone       string
	IsMVP       bool
	HireDate    string
}

type listingFixture struct {
	RealtorIdx  int
	Title       string
	Address     string
	City        string
	State       string
	Zipcode     string
	Description string
	Price       int
	Bedrooms    int
	Bathrooms   int
	Garage      int
	Sqft        int
	LotSize     float64
	ListDate    string
	PhotoMain   string
	Photos      []string
}

var realtors = []realtorFixture{
	{"John Smith", "photos/realtors/agent1.jpg", "Top performing agent with 10 years of experience", "john.smith@realestate.com", "555-111-2222", true, "2020-01-15"},
	{"Sarah Johnson", "photos/realtors/agent2.jpg", "Specializing in luxury properties", "sarah.j@realestate.com", "555-333-4444", false, "2021-03-20"},
	{"Emily Davis", "photos/realtors/agent3.jpg", "Expert in first-time homebuyers and affordable housing", "emily.davis@realestate.com", "555-555-6666", true, "2018-06-25"},
	{"Michael Brown", "photos/realtors/agent4.jpg", "Specializing in commercial real estate and investment properties", "michael.brown@realestate.com", "555-777-8888", false, "2022-02-10"},
	{"Olivia Green", "photos/realtors/agent5.jpg", "Focused on family homes and neighborhood communities", "olivia.green@realestate.com", "555-999-0000", false, "2019-11-05"},
	{"David Wilson", "photos/realtors/agent6.jpg", "Leading agent for waterfront and luxury properties", "david.wilson@realestate.com", "555-123-4567", true, "2017-08-22"},
	{"Sophia Martinez", "photos/realtors/agent7.jpg", "Expert in relocation and corporate real estate services", "sophia.martinez@realestate.com", "555-555-7777", false, "2020-04-30"},
}

var listings = []listingFixture{
	{0, "Beautiful Family Home", "123 Main Street", "Beverly Hills", "CA", "90210", "Stunning 4-bedroom home with modern amenities", 750000, 4, 3, 2, 2500, 0.5, "2024-01-01", "photos/homes/home1_main.jpg", galleryRefs(1)},
	{1, "Modern Downtown Condo", "456 Park Avenue", "Los Angeles", "CA", "90001", "Luxurious 2-bedroom condo in prime location", 500000, 2, 2, 1, 1200, 0.0, "2024-01-15", "photos/homes/home2_main.jpg", galleryRefs(2)},
	{2, "Cozy Suburban Cottage", "789 Elm Street", "San Diego", "CA", "92101", "Charming 3-bedroom cottage with a large backyard", 400000, 3, 2, 1, 1500, 0.3, "2024-02-01", "photos/homes/home3_main.jpg", galleryRefs(3)},
	{3, "Commercial Office Space", "1010 Market Street", "San Francisco", "CA", "94103", "Spacious office building ideal for startups", 1200000, 0, 4, 5, 5000, 1.0, "2024-02-15", "photos/homes/home4_main.jpg", galleryRefs(4)},
	{4, "Spacious Family Home", "222 Oak Drive", "Sacramento", "CA", "95814", "Beautiful 5-bedroom home with a pool", 850000, 5, 4, 2, 3200, 0.8, "2024-03-01", "photos/homes/home5_main.jpg", galleryRefs(5)},
	{5, "Luxury Beachfront Villa", "333 Ocean Avenue", "Malibu", "CA", "90265", "Exclusive villa with stunning ocean views", 3000000, 6, 5, 3, 4500, 1.5, "2024-03-15", "photos/homes/home6_main.jpg", galleryRefs(6)},
	{6, "Modern Apartment in Downtown", "555 City Center Blvd", "Los Angeles", "CA", "90015", "Contemporary 1-bedroom apartment with city views", 350000, 1, 1, 1, 800, 0.0, "2024-04-01", "photos/homes/home7_main.jpg", galleryRefs(7)},
}

func galleryRefs(home int) []string {
	refs := make([]string, models.MaxGalleryPhotos)
	for i := range refs {
		refs[i] = fmt.Sprintf("photos/homes/home%d_%d.jpg", home, i+1)
	}
	return refs
}

// Run inserts the sample catalog. It is idempotent: a database that
// already has listings is left untouched.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Listing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	if count > 0 {
		slog.Info("seed skipped, listings already present", "count", count)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		created := make([]models.Realtor, 0, len(realtors))
		for _, f := range realtors {
			hireDate, err := time.Parse("2006-01-02", f.HireDate)
			if err != nil {
				return fmt.Errorf("realtor %q: %w", f.Name, err)
			}
			r := models.Realtor{
				Name:        f.Name,
				Photo:       f.Photo,
				Description: f.Description,
				Email:       f.Email,
				Phone:       f.Phone,
				IsMVP:       f.IsMVP,
				HireDate:    hireDate,
			}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("create realtor %q: %w", f.Name, err)
			}
			created = append(created, r)
			slog.Info("created realtor", "name", r.Name)
		}

		for _, f := range listings {
			listDate, err := time.Parse("2006-01-02", f.ListDate)
			if err != nil {
				return fmt.Errorf("listing %q: %w", f.Title, err)
			}
			photos, err := json.Marshal(f.Photos)
			if err != nil {
				return fmt.Errorf("listing %q: %w", f.Title, err)
			}
			l := models.Listing{
				RealtorID:   created[f.RealtorIdx].ID,
				Title:       f.Title,
				Address:     f.Address,
				City:        f.City,
				State:       f.State,
				Zipcode:     f.Zipcode,
				Description: f.Description,
				Price:       f.Price,
				Bedrooms:    f.Bedrooms,
				Bathrooms:   f.Bathrooms,
				Garage:      f.Garage,
				Sqft:        f.Sqft,
				LotSize:     f.LotSize,
				ListDate:    listDate,
				PhotoMain:   f.PhotoMain,
				Photos:      datatypes.JSON(photos),
			}
			if err := tx.Create(&l).Error; err != nil {
				return fmt.Errorf("create listing %q: %w", f.Title, err)
			}
			slog.Info("created listing", "title", l.Title)
		}

		return nil
	})
}

// CreateDemoUser registers a throwaway demo account with its profile,
// skipping when the username is taken.
func CreateDemoUser(db *gorm.DB, username, password string) error {
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		slog.Info("demo user already exists", "username", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		Username:  username,
		FirstName: "Demo",
		LastName:  "User",
		Email:     username + "@homefront.example",
		Password:  string(hash),
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}
		return tx.Create(&models.UserProfile{UserID: user.ID}).Error
	})
}
