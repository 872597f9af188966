package models

import "time"

// Realtor is a sales agent who owns one or more listings.
type Realtor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Photo       string    `gorm:"size:500" json:"photo"`
	Description string    `gorm:"type:text" json:"description"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	IsMVP       bool      `gorm:"default:false" json:"is_mvp"`
	HireDate    time.Time `gorm:"not null" json:"hire_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Listings []Listing `gorm:"foreignKey:RealtorID" json:"-"`
}

func (Realtor) TableName() string {
	return "realtors"
}
