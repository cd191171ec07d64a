package model

import (
	"time"

	"gorm.io/gorm"
)

// Blog post status values
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// BlogPost represents an article on the marketplace blog
type BlogPost struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Title     string         `gorm:"not null" json:"title"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Content   string         `gorm:"type:text" json:"content"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Status    string         `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published

	// Relationships
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// BlogListItem is the projection returned by the public blog listing
type BlogListItem struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
