package models

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mytheresa/catalog-admin/app/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
		Env:    "test",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCategories(t *testing.T, repo *CategoriesRepository, n int) []Category {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Category, 0, n)
	for i := 1; i <= n; i++ {
		c := Category{
			Name:      fmt.Sprintf("Category %d", i),
			Slug:      fmt.Sprintf("category-%d", i),
			Image:     fmt.Sprintf("%d.png", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreateCategory(context.Background(), &c))
		out = append(out, c)
	}
	return out
}

func TestCategoriesRepository_FindCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))
	seeded := seedCategories(t, repo, 1)

	found, err := repo.FindCategory(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Category 1", found.Name)
	assert.Equal(t, "1.png", found.Image)

	_, err = repo.FindCategory(ctx, 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoriesRepository_UpdateCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))
	seeded := seedCategories(t, repo, 1)

	// Arrange
	c := seeded[0]
	c.Name = "Electronics & Gadgets"
	c.Slug = "electronics-gadgets"
	c.Image = "should-not-be-written.png"

	// Act
	err := repo.UpdateCategory(ctx, &c, "name", "slug")

	// Assert
	require.NoError(t, err)
	found, err := repo.FindCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics & Gadgets", found.Name)
	assert.Equal(t, "electronics-gadgets", found.Slug)
	assert.Equal(t, "1.png", found.Image)

	missing := Category{ID: 9999, Name: "x"}
	assert.ErrorIs(t, repo.UpdateCategory(ctx, &missing, "name"), ErrCategoryNotFound)
}

func TestCategoriesRepository_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))
	seeded := seedCategories(t, repo, 2)

	require.NoError(t, repo.DeleteCategory(ctx, &seeded[0]))

	_, err := repo.FindCategory(ctx, seeded[0].ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = repo.FindCategory(ctx, seeded[1].ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteCategory(ctx, &seeded[0]), ErrCategoryNotFound)
}

func TestCategoriesRepository_ListRecentCategories(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))
	seedCategories(t, repo, 7)

	testCases := []struct {
		name          string
		page          int
		expectedNames []string
		expectedPrev  bool
		expectedNext  bool
	}{
		{
			name:          "First page is newest first",
			page:          1,
			expectedNames: []string{"Category 7", "Category 6", "Category 5", "Category 4", "Category 3"},
			expectedNext:  true,
		},
		{
			name:          "Second page holds the rest",
			page:          2,
			expectedNames: []string{"Category 2", "Category 1"},
			expectedPrev:  true,
		},
		{
			name:          "Invalid page falls back to first",
			page:          0,
			expectedNames: []string{"Category 7", "Category 6", "Category 5", "Category 4", "Category 3"},
			expectedNext:  true,
		},
		{
			name:         "Past the end is empty",
			page:         9,
			expectedPrev: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			items, p, err := repo.ListRecentCategories(ctx, tc.page, 5)

			// Assert
			require.NoError(t, err)
			names := make([]string, 0, len(items))
			for _, c := range items {
				names = append(names, c.Name)
			}
			if tc.expectedNames == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tc.expectedNames, names)
			}
			assert.Equal(t, int64(7), p.Total)
			assert.Equal(t, 2, p.LastPage())
			assert.Equal(t, tc.expectedPrev, p.HasPrev())
			assert.Equal(t, tc.expectedNext, p.HasNext())
		})
	}
}

func TestListRecentCategories_TieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))

	same := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := Category{Name: "First", Slug: "first", CreatedAt: same}
	second := Category{Name: "Second", Slug: "second", CreatedAt: same}
	require.NoError(t, repo.CreateCategory(ctx, &first))
	require.NoError(t, repo.CreateCategory(ctx, &second))

	items, _, err := repo.ListRecentCategories(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Name)
}

func TestUsersRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepository(newTestDB(t))

	created, err := repo.EnsureUser(ctx, "Jane Doe", "jane@example.com")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	again, err := repo.EnsureUser(ctx, "Other Name", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Jane Doe", again.Name)

	found, err := repo.FindUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", found.Email)

	_, err = repo.FindUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfilesRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUsersRepository(db)
	profiles := NewProfilesRepository(db)

	user, err := users.EnsureUser(ctx, "Jane Doe", "jane@example.com")
	require.NoError(t, err)

	_, err = profiles.LatestProfileForUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := Profile{UserID: user.ID, FirstName: "Old", Image: "old.png", CreatedAt: base}
	newer := Profile{UserID: user.ID, FirstName: "New", Image: "", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, profiles.CreateProfile(ctx, &older))
	require.NoError(t, profiles.CreateProfile(ctx, &newer))

	latest, err := profiles.LatestProfileForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", latest.FirstName)
	assert.Equal(t, "", latest.Image)
	assert.Equal(t, "Jane Doe", latest.User.Name)
}

func TestPagination(t *testing.T) {
	p := NewPagination(0, 5, 11)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 3, p.LastPage())
	assert.Equal(t, 2, p.NextPage())
	assert.Equal(t, 1, p.PrevPage())

	empty := NewPagination(1, 5, 0)
	assert.Equal(t, 1, empty.LastPage())
	assert.False(t, empty.HasNext())
}
