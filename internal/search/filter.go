// Package search composes listing filters from user-submitted criteria.
//
// A Filter is a plain value object holding the typed predicates parsed out
// of a search form. Apply AND-composes every present predicate onto a
// listing query; absent predicates never narrow the result, so an empty
// Filter degrades to the full collection.
package search

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type Filter struct {
	// Keywords matches case-insensitive substrings of a listing's title,
	// description, or address, or of the owning realtor's name. Any one
	// field matching includes the listing.
	Keywords string

	// City and State are case-insensitive exact matches.
	City  string
	State string

	// Bedrooms is an exact match when set.
	Bedrooms *int

	// MaxPrice is an inclusive ceiling when set.
	MaxPrice *float64
}

// Scope is a single filter predicate in gorm scope form.
type Scope = func(*gorm.DB) *gorm.DB

// Parse builds a Filter from raw form values. Blank values are skipped and
// malformed numeric input drops the criterion rather than failing the
// search.
func Parse(keywords, city, state, bedrooms, maxPrice string) Filter {
	f := Filter{
		Keywords: strings.TrimSpace(keywords),
		City:     strings.TrimSpace(city),
		State:    strings.TrimSpace(state),
	}

	if s := strings.TrimSpace(bedrooms); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			f.Bedrooms = &n
		}
	}
	if s := strings.TrimSpace(maxPrice); s != "" {
		if p, err := strconv.ParseFloat(s, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	return f
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.Keywords == "" && f.City == "" && f.State == "" &&
		f.Bedrooms == nil && f.MaxPrice == nil
}

// Scopes returns one predicate per supplied criterion.
func (f Filter) Scopes() []Scope {
	var scopes []Scope

	if f.Keywords != "" {
		pattern := "%" + strings.ToLower(f.Keywords) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"LOWER(listings.title) LIKE ? OR LOWER(listings.description) LIKE ? OR LOWER(listings.address) LIKE ?"+
					" OR listings.realtor_id IN (SELECT id FROM realtors WHERE LOWER(name) LIKE ?)",
				pattern, pattern, pattern, pattern,
			)
		})
	}

	// Both sides lower-cased so stored casing never causes silent misses.
	if f.City != "" {
		city := strings.ToLower(f.City)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(listings.city) = ?", city)
		})
	}
	if f.State != "" {
		state := strings.ToLower(f.State)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(listings.state) = ?", state)
		})
	}

	if f.Bedrooms != nil {
		n := *f.Bedrooms
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("listings.bedrooms = ?", n)
		})
	}
	if f.MaxPrice != nil {
		p := *f.MaxPrice
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("listings.price <= ?", p)
		})
	}

	return scopes
}

// Apply AND-composes every supplied predicate onto db.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	for _, scope := range f.Scopes() {
		db = scope(db)
	}
	return db
}
