package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// School status values
const (
	SchoolStatusActive   = "active"
	SchoolStatusInactive = "inactive"
)

// School represents a language school listed in the marketplace
type School struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	City        string         `gorm:"type:varchar(120);not null;index:idx_schools_country_city_status,priority:2" json:"city"`
	Country     string         `gorm:"type:varchar(120);not null;index:idx_schools_country_city_status,priority:1" json:"country"`
	Description string         `gorm:"type:text" json:"description"`
	FoundedYear int            `json:"founded_year"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"` // list of CDN URLs
	Logo        string         `gorm:"type:varchar(512)" json:"logo"`
	Status      string         `gorm:"type:varchar(20);default:'active';index:idx_schools_country_city_status,priority:3" json:"status"` // active, inactive

	// Relationships
	Courses []Course `gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
}

// SchoolListItem is the projection returned by public list endpoints.
// It carries only the fields the school cards render.
type SchoolListItem struct {
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Rating  float64 `json:"rating"`
	Logo    string  `json:"logo"`
	// PriceFrom is the lowest course price at the school, 0 when it has
	// no courses yet.
	PriceFrom float64 `json:"price_from"`
}

// IsActive reports whether the school is visible on public listings
func (s *School) IsActive() bool {
	return s.Status == SchoolStatusActive
}
