package models

import "time"

// Category is a named group with a cover image.
// Slug is derived from Name and is not unique.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Slug      string    `gorm:"size:255;index;not null"`
	Image     string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (c *Category) TableName() string {
	return "categories"
}
