package impl

import (
	"context"
	"log/slog"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/usecase"

	"github.com/pkg/errors"
)

// adminService implements the AdminUsecase interface. It is read-only:
// admin writes go through the store usecase.
type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// Dashboard returns the system totals and per-store averages.
func (srv *adminService) Dashboard(ctx context.Context) (*usecase.DashboardOutput, error) {
	totalUsers, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	totalStores, err := srv.storeRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}

	totalRatings, err := srv.ratingRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count ratings")
	}

	averages, err := srv.ratingRepo.StoreAverages(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute store averages")
	}

	return &usecase.DashboardOutput{
		TotalUsers:    totalUsers,
		TotalStores:   totalStores,
		TotalRatings:  totalRatings,
		StoreAverages: averages,
	}, nil
}

// Users lists accounts matching the filter, without credential material.
func (srv *adminService) Users(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	sanitized := make([]*entity.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}

// Stores lists stores matching the filter, with averages.
func (srv *adminService) Stores(ctx context.Context, filter repository.StoreFilter) ([]*entity.StoreSummary, error) {
	summaries, err := srv.storeRepo.List(ctx, filter, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return summaries, nil
}

// UserDetails returns one account and, for store owners, their stores with
// current averages.
func (srv *adminService) UserDetails(ctx context.Context, userID int64) (*usecase.UserDetailsOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	output := &usecase.UserDetailsOutput{User: user.Sanitized()}

	if user.Role == entity.RoleStoreOwner {
		owned, err := srv.storeRepo.ListByOwner(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list stores by owner")
		}

		for _, store := range owned {
			for _, rating := range store.Ratings {
				rating.Rater = rating.Rater.Sanitized()
			}
		}
		output.Stores = owned
	}

	return output, nil
}
