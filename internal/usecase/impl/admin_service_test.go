package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
)

func TestAdminService_Dashboard(t *testing.T) {
	userRepo := new(mockUserRepository)
	storeRepo := new(mockStoreRepository)
	ratingRepo := new(mockRatingRepository)
	svc := NewAdminService(userRepo, storeRepo, ratingRepo, slog.Default())

	ctx := context.Background()
	userRepo.On("Count", ctx).Return(int64(12), nil)
	storeRepo.On("Count", ctx).Return(int64(4), nil)
	ratingRepo.On("Count", ctx).Return(int64(31), nil)
	ratingRepo.On("StoreAverages", ctx).Return([]*repository.StoreAverage{
		{StoreID: 1, AverageRating: 4.5},
	}, nil)

	output, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(12), output.TotalUsers)
	assert.Equal(t, int64(4), output.TotalStores)
	assert.Equal(t, int64(31), output.TotalRatings)
	require.Len(t, output.StoreAverages, 1)
	assert.InDelta(t, 4.5, output.StoreAverages[0].AverageRating, 1e-9)
}

func TestAdminService_Users_Sanitized(t *testing.T) {
	userRepo := new(mockUserRepository)
	storeRepo := new(mockStoreRepository)
	ratingRepo := new(mockRatingRepository)
	svc := NewAdminService(userRepo, storeRepo, ratingRepo, slog.Default())

	ctx := context.Background()
	filter := repository.UserFilter{Role: entity.RoleUser}
	userRepo.On("List", ctx, filter).Return([]*entity.User{
		{ID: 1, Email: "a@example.com", PasswordHash: "hash", Role: entity.RoleUser},
	}, nil)

	users, err := svc.Users(ctx, filter)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
}

func TestAdminService_UserDetails(t *testing.T) {
	userRepo := new(mockUserRepository)
	storeRepo := new(mockStoreRepository)
	ratingRepo := new(mockRatingRepository)
	svc := NewAdminService(userRepo, storeRepo, ratingRepo, slog.Default())

	ctx := context.Background()

	// A plain user has no stores attached.
	userRepo.On("FindByID", ctx, int64(1)).
		Return(&entity.User{ID: 1, Role: entity.RoleUser, PasswordHash: "hash"}, nil)
	details, err := svc.UserDetails(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, details.User.PasswordHash)
	assert.Nil(t, details.Stores)

	// A store owner gets their stores with averages.
	avg := 4.0
	userRepo.On("FindByID", ctx, int64(2)).
		Return(&entity.User{ID: 2, Role: entity.RoleStoreOwner}, nil)
	storeRepo.On("ListByOwner", ctx, int64(2)).Return([]*entity.OwnedStore{
		{Store: entity.Store{ID: 5, OwnerID: 2}, AverageRating: &avg},
	}, nil)
	details, err = svc.UserDetails(ctx, 2)
	require.NoError(t, err)
	require.Len(t, details.Stores, 1)

	// Unknown accounts surface as NotFound.
	userRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrUserNotFound)
	_, err = svc.UserDetails(ctx, 99)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
