package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProfilesRepository struct {
	db *gorm.DB
}

// ErrProfileNotFound is returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

func NewProfilesRepository(db *gorm.DB) *ProfilesRepository {
	return &ProfilesRepository{
		db: db,
	}
}

func (r *ProfilesRepository) CreateProfile(ctx context.Context, profile *Profile) error {
	return r.db.WithContext(ctx).Omit("User").Create(profile).Error
}

// LatestProfileForUser returns the most recently created profile of userID.
func (r *ProfilesRepository) LatestProfileForUser(ctx context.Context, userID uint) (*Profile, error) {
	var profile Profile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
