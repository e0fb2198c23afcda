package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type UsersRepository struct {
	db *gorm.DB
}

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{
		db: db,
	}
}

func (r *UsersRepository) FindUser(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureUser returns the user with email, creating it with name if missing.
func (r *UsersRepository) EnsureUser(ctx context.Context, name, email string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).
		Where(User{Email: email}).
		Attrs(User{Name: name}).
		FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
