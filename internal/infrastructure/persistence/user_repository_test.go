package persistence

import (
	"context"
	"testing"

	"github.com/mystore/backend/internal/domain/identity"
	"github.com/mystore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.User{})
	require.NoError(t, err)

	return db
}

func TestGormUserRepository_Create(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("creates a user", func(t *testing.T) {
		user, err := identity.NewUser("alice@example.com", "Acme", "supersecret")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, user))
	})

	t.Run("duplicate email returns already exists", func(t *testing.T) {
		duplicate, err := identity.NewUser("alice@example.com", "Other", "supersecret")
		require.NoError(t, err)

		err = repo.Create(ctx, duplicate)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("bob@example.com", "Acme", "supersecret")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("finds by email regardless of case", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Bob@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.True(t, found.VerifyPassword("supersecret"))
	})

	t.Run("unknown email returns not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
