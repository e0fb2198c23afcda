package models

import "time"

// Profile belongs to a User. Image holds the stored file name only.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	FirstName string `gorm:"size:255"`
	Image     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) TableName() string {
	return "profiles"
}

// All returns every model managed by this package, in migration order.
func All() []any {
	return []any{&User{}, &Category{}, &Profile{}}
}
