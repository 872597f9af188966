package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaxGalleryPhotos caps the gallery photo references stored per listing,
// in addition to the main photo.
const MaxGalleryPhotos = 6

// Listing is a property-for-sale record. Rows are created by the seed
// import and read-only afterwards; list_date is set on create and never
// updated.
type Listing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RealtorID   uint           `gorm:"not null;index" json:"realtor_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Address     string         `gorm:"size:200;not null" json:"address"`
	City        string         `gorm:"size:100;not null;index" json:"city"`
	State       string         `gorm:"size:100;not null;index" json:"state"`
	Zipcode     string         `gorm:"size:20" json:"zipcode"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int            `gorm:"not null;check:price >= 0" json:"price"`
	Bedrooms    int            `gorm:"not null" json:"bedrooms"`
	Bathrooms   int            `gorm:"not null" json:"bathrooms"`
	Garage      int            `gorm:"default:0" json:"garage"`
	Sqft        int            `gorm:"not null" json:"sqft"`
	LotSize     float64        `gorm:"default:0" json:"lot_size"`
	ListDate    time.Time      `gorm:"not null;index:idx_listings_list_date,sort:desc" json:"list_date"`
	PhotoMain   string         `gorm:"size:500" json:"photo_main"`
	Photos      datatypes.JSON `json:"photos,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Realtor Realtor `gorm:"foreignKey:RealtorID" json:"realtor"`
}

func (Listing) TableName() string {
	return "listings"
}
