package repository

import (
	"context"
	"errors"

	"storerate/internal/domain/entity"
)

// ErrStoreNotFound is returned when a store lookup matches nothing.
var ErrStoreNotFound = errors.New("store not found")

// StoreFilter narrows store listings. Zero values mean "no filter".
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	// SortByRating orders results by average score when set to
	// "asc" or "desc". Empty leaves storage order.
	SortByRating string
}

// StoreRepository defines persistence operations for stores, including the
// aggregated read models computed at query time.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Store, error)

	// Create persists a new store. A duplicate email surfaces as
	// domain errors.ErrStoreEmailTaken.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies name, email, address and owner of an existing store.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store. Missing id surfaces as ErrStoreNotFound.
	Delete(ctx context.Context, id int64) error

	// List returns stores matching the filter, each joined with its average
	// score and, when userID > 0, that user's own score.
	List(ctx context.Context, filter StoreFilter, userID int64) ([]*entity.StoreSummary, error)

	// AverageRating computes the arithmetic mean of all scores for a store
	// at query time. Returns nil (not zero) when the store has no ratings.
	AverageRating(ctx context.Context, storeID int64) (*float64, error)

	// ListUnrated returns up to limit stores with no ratings at all. When
	// every store has at least one rating, it falls back to stores the
	// given user has not rated yet. The fallback ordering is part of the
	// contract: global-unrated first, personal-unrated only as fallback.
	ListUnrated(ctx context.Context, userID int64, limit int) ([]*entity.Store, error)

	// ListByOwner returns the stores owned by a user, with ratings and
	// rater identities attached.
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.OwnedStore, error)

	// Count returns the total number of stores.
	Count(ctx context.Context) (int64, error)
}
