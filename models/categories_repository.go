package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) FindCategory(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// UpdateCategory writes only the named columns of category (plus updated_at).
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category *Category, columns ...string) error {
	if category.ID == 0 {
		return ErrCategoryNotFound
	}

	selected := append(append([]string{}, columns...), "updated_at")

	res := r.db.WithContext(ctx).
		Model(category).
		Select(selected).
		Updates(category)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, category *Category) error {
	res := r.db.WithContext(ctx).Delete(&Category{}, category.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ListRecentCategories returns one page of categories, newest first.
func (r *CategoriesRepository) ListRecentCategories(ctx context.Context, page, perPage int) ([]Category, Pagination, error) {
	var categories []Category
	var total int64

	query := r.db.WithContext(ctx).Model(&Category{})

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	p := NewPagination(page, perPage, total)

	// Apply pagination
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&categories).Error; err != nil {
		return nil, Pagination{}, err
	}

	return categories, p, nil
}
