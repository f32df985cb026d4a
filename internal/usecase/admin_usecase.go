package usecase

import (
	"context"

	"storerate/internal/domain/entity"
	"storerate/internal/domain/repository"
)

// --- Output DTOs ---

// DashboardOutput aggregates the system totals for the admin landing view.
type DashboardOutput struct {
	TotalUsers    int64
	TotalStores   int64
	TotalRatings  int64
	StoreAverages []*repository.StoreAverage
}

// UserDetailsOutput is a user plus, for store owners, their stores with
// current averages.
type UserDetailsOutput struct {
	User   *entity.User
	Stores []*entity.OwnedStore
}

// AdminUsecase defines the read-side operations backing the admin views.
type AdminUsecase interface {
	// Dashboard returns the system totals and per-store averages.
	Dashboard(ctx context.Context) (*DashboardOutput, error)

	// Users lists accounts matching the filter.
	Users(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error)

	// Stores lists stores matching the filter, with averages.
	Stores(ctx context.Context, filter repository.StoreFilter) ([]*entity.StoreSummary, error)

	// UserDetails returns one account and, when it owns stores, those
	// stores with their averages.
	UserDetails(ctx context.Context, userID int64) (*UserDetailsOutput, error)
}
