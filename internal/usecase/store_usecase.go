package usecase

import (
	"context"

	"storerate/internal/domain/entity"
	"storerate/internal/domain/repository"
)

// --- Input DTOs ---

// NewOwnerInput describes a store_owner account to create together with a
// store, inside the same transaction.
type NewOwnerInput struct {
	Name     string
	Email    string
	Address  string
	Password string
}

// CreateStoreInput defines the data required to create a store. Exactly one
// of OwnerID and Owner must be set: either an existing owner is referenced
// or a fresh owner account is created atomically with the store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID int64
	Owner   *NewOwnerInput
}

// UpdateStoreInput defines the data for modifying an existing store.
type UpdateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID int64
}

// StoreUsecase defines the interface for store management operations.
type StoreUsecase interface {
	// Create persists a new store, optionally creating its owner account
	// in the same transaction.
	Create(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)

	// Update modifies an existing store.
	Update(ctx context.Context, id int64, input *UpdateStoreInput) (*entity.Store, error)

	// Delete removes a store.
	Delete(ctx context.Context, id int64) error

	// Get returns one store with its average and, when userID > 0, the
	// caller's own score.
	Get(ctx context.Context, id, userID int64) (*entity.StoreSummary, error)

	// List returns stores matching the filter, joined with averages. When
	// userID > 0 each row also carries that user's score.
	List(ctx context.Context, filter repository.StoreFilter, userID int64) ([]*entity.StoreSummary, error)

	// Unrated suggests stores the caller has not rated, preferring stores
	// nobody has rated yet.
	Unrated(ctx context.Context, userID int64) ([]*entity.Store, error)

	// OwnerStores returns the caller's stores with their full rating
	// history for the owner dashboard.
	OwnerStores(ctx context.Context, ownerID int64) ([]*entity.OwnedStore, error)
}
