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

func TestStoreRepository_CreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStoreRepository(db)

	owner := createTestUser(t, db, "owner@example.com", entity.RoleStoreOwner)
	createTestStore(t, db, "store@example.com", owner.ID)

	err := repo.Create(ctx, &entity.Store{
		Name:    "Second Store",
		Email:   "store@example.com",
		OwnerID: owner.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrStoreEmailTaken)
}

func TestStoreRepository_AverageRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	storeRepo := NewStoreRepository(db)
	ratingRepo := NewRatingRepository(db)

	owner := createTestUser(t, db, "owner@example.com", entity.RoleStoreOwner)
	alice := createTestUser(t, db, "alice@example.com", entity.RoleUser)
	bob := createTestUser(t, db, "bob@example.com", entity.RoleUser)
	store := createTestStore(t, db, "store@example.com", owner.ID)

	// No ratings yet: average is nil, not zero.
	avg, err := storeRepo.AverageRating(ctx, store.ID)
	require.NoError(t, err)
	assert.Nil(t, avg)

	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: alice.ID, StoreID: store.ID, Score: 3}))
	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: bob.ID, StoreID: store.ID, Score: 5}))

	avg, err = storeRepo.AverageRating(ctx, store.ID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.0, *avg, 1e-9)
}

func TestStoreRepository_ListWithUserRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	storeRepo := NewStoreRepository(db)
	ratingRepo := NewRatingRepository(db)

	owner := createTestUser(t, db, "owner@example.com", entity.RoleStoreOwner)
	alice := createTestUser(t, db, "alice@example.com", entity.RoleUser)
	bob := createTestUser(t, db, "bob@example.com", entity.RoleUser)
	store := createTestStore(t, db, "store@example.com", owner.ID)

	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: alice.ID, StoreID: store.ID, Score: 2}))
	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: bob.ID, StoreID: store.ID, Score: 4}))

	summaries, err := storeRepo.List(ctx, repository.StoreFilter{}, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	require.NotNil(t, summaries[0].AverageRating)
	assert.InDelta(t, 3.0, *summaries[0].AverageRating, 1e-9)
	require.NotNil(t, summaries[0].UserRating)
	assert.Equal(t, 2, *summaries[0].UserRating)

	// A caller who has not rated gets a nil UserRating.
	anon, err := storeRepo.List(ctx, repository.StoreFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Nil(t, anon[0].UserRating)
}

func TestStoreRepository_ListFiltersAndSort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	storeRepo := NewStoreRepository(db)
	ratingRepo := NewRatingRepository(db)

	owner := createTestUser(t, db, "owner@example.com", entity.RoleStoreOwner)
	alice := createTestUser(t, db, "alice@example.com", entity.RoleUser)
	coffee := createTestStore(t, db, "coffee@example.com", owner.ID)
	coffee.Name = "Corner Coffee"
	require.NoError(t, storeRepo.Update(ctx, coffee))
	bakery := createTestStore(t, db, "bakery@example.com", owner.ID)
	bakery.Name = "Daily Bakery"
	require.NoError(t, storeRepo.Update(ctx, bakery))

	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: alice.ID, StoreID: coffee.ID, Score: 5}))
	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: owner.ID, StoreID: bakery.ID, Score: 2}))

	// Case-insensitive substring filter on name.
	filtered, err := storeRepo.List(ctx, repository.StoreFilter{Name: "coffee"}, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, coffee.ID, filtered[0].ID)

	// Sort by average score descending.
	sorted, err := storeRepo.List(ctx, repository.StoreFilter{SortByRating: "desc"}, 0)
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, coffee.ID, sorted[0].ID)
	assert.Equal(t, bakery.ID, sorted[1].ID)
}

func TestStoreRepository_ListUnratedFallback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	storeRepo := NewStoreRepository(db)
	ratingRepo := NewRatingRepository(db)

	owner := createTestUser(t, db, "owner@example.com", entity.RoleStoreOwner)
	alice := createTestUser(t, db, "alice@example.com", entity.RoleUser)
	bob := createTestUser(t, db, "bob@example.com", entity.RoleUser)
	first := createTestStore(t, db, "first@example.com", owner.ID)
	second := createTestStore(t, db, "second@example.com", owner.ID)

	// Globally unrated stores win.
	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: alice.ID, StoreID: first.ID, Score: 4}))

	unrated, err := storeRepo.ListUnrated(ctx, alice.ID, 5)
	require.NoError(t, err)
	require.Len(t, unrated, 1)
	assert.Equal(t, second.ID, unrated[0].ID)

	// Once every store has a rating, fall back to stores this user skipped.
	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: bob.ID, StoreID: second.ID, Score: 3}))

	unrated, err = storeRepo.ListUnrated(ctx, alice.ID, 5)
	require.NoError(t, err)
	require.Len(t, unrated, 1)
	assert.Equal(t, second.ID, unrated[0].ID)

	// A user who rated everything gets an empty result.
	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: alice.ID, StoreID: second.ID, Score: 5}))
	unrated, err = storeRepo.ListUnrated(ctx, alice.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, unrated)
}

func TestStoreRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	storeRepo := NewStoreRepository(db)
	ratingRepo := NewRatingRepository(db)

	owner := createTestUser(t, db, "owner@example.com", entity.RoleStoreOwner)
	stranger := createTestUser(t, db, "stranger@example.com", entity.RoleStoreOwner)
	alice := createTestUser(t, db, "alice@example.com", entity.RoleUser)
	mine := createTestStore(t, db, "mine@example.com", owner.ID)
	createTestStore(t, db, "theirs@example.com", stranger.ID)

	require.NoError(t, ratingRepo.Create(ctx, &entity.Rating{UserID: alice.ID, StoreID: mine.ID, Score: 5}))

	owned, err := storeRepo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, mine.ID, owned[0].ID)
	require.NotNil(t, owned[0].AverageRating)
	assert.InDelta(t, 5.0, *owned[0].AverageRating, 1e-9)
	require.Len(t, owned[0].Ratings, 1)
	require.NotNil(t, owned[0].Ratings[0].Rater)
	assert.Equal(t, alice.ID, owned[0].Ratings[0].Rater.ID)
}

func TestStoreRepository_DeleteMissing(t *testing.T) {
	db := newTestDB(t)

	err := NewStoreRepository(db).Delete(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrStoreNotFound)
}
