package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, "taken@example.com", entity.RoleUser)

	err := repo.Create(context.Background(), &entity.User{
		Name:         "Second Account With Same Email",
		Email:        "taken@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleUser,
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created := createTestUser(t, db, "lookup@example.com", entity.RoleStoreOwner)

	found, err := repo.FindByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, entity.RoleStoreOwner, found.Role)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "pw@example.com", entity.RoleUser)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)

	err = repo.UpdatePassword(ctx, 999, "new-hash")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	createTestUser(t, db, "admin@example.com", entity.RoleAdmin)
	createTestUser(t, db, "user@example.com", entity.RoleUser)

	// Role filter.
	admins, err := repo.List(ctx, repository.UserFilter{Role: entity.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)

	// Case-insensitive email substring.
	byEmail, err := repo.List(ctx, repository.UserFilter{Email: "ADMIN"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	all, err := repo.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	txManager := NewTransactionManager(db)

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewUserRepository().Create(ctx, &entity.User{
			Name:         "Transactional Owner Account",
			Email:        "tx@example.com",
			PasswordHash: "hash",
			Role:         entity.RoleStoreOwner,
		}); err != nil {
			return err
		}

		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// The user insert was rolled back together with the failure.
	_, err = NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
