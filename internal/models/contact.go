package models

import "time"

// Contact is a buyer inquiry submitted against a listing. Rows are
// append-only: created by the contact intake flow and never mutated.
// ListingID is nullable so inquiries survive listing deletion; the title
// snapshot keeps the context readable either way.
type Contact struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListingID    *uint     `gorm:"index" json:"listing_id"`
	ListingTitle string    `gorm:"size:200" json:"listing_title"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;index" json:"email"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	CreatedAt    time.Time `json:"created_at"`

	Listing *Listing `gorm:"foreignKey:ListingID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ListingRef returns the referenced listing id, or 0 when the listing has
// since been deleted.
func (c Contact) ListingRef() uint {
	if c.ListingID == nil {
		return 0
	}
	return *c.ListingID
}
