package model

import (
	"time"

	"gorm.io/gorm"
)

// Course types accepted by the public filter
const (
	CourseTypeGeneral   = "general"
	CourseTypeIntensive = "intensive"
	CourseTypeExam      = "exam"
	CourseTypeBusiness  = "business"
)

// Course represents a course offered by a school (e.g., "General English 20")
type Course struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	SchoolID      uint           `gorm:"not null;index:idx_courses_school_type,priority:1" json:"school_id"`
	Name          string         `gorm:"not null" json:"name"`
	Type          string         `gorm:"type:varchar(50);not null;index:idx_courses_school_type,priority:2" json:"type"`
	DurationWeeks int            `gorm:"default:1" json:"duration_weeks"`
	Price         float64        `gorm:"not null" json:"price"`
	VisaIncluded  bool           `gorm:"default:false" json:"visa_included"`

	// Relationships
	School School `gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE" json:"school,omitempty"`
}

// CourseListItem is the projection returned by public course listings
type CourseListItem struct {
	ID            uint    `json:"id"`
	SchoolID      uint    `json:"school_id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	DurationWeeks int     `json:"duration_weeks"`
	Price         float64 `json:"price"`
	VisaIncluded  bool    `json:"visa_included"`
}
