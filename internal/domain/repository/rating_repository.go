package repository

import (
	"context"
	"errors"

	"storerate/internal/domain/entity"
)

var (
	// ErrRatingNotFound is returned when a rating lookup matches nothing.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrDuplicateRating is returned when an insert collides with the
	// (user_id, store_id) unique index. The usecase treats this as
	// "update instead" to keep the one-rating-per-pair invariant under
	// concurrent submissions.
	ErrDuplicateRating = errors.New("rating already exists for this user and store")
)

// StoreAverage pairs a store with its mean score, for the admin dashboard.
type StoreAverage struct {
	StoreID       int64
	AverageRating float64
}

// RatingRepository defines persistence operations for ratings. The
// (user_id, store_id) pair is unique at the storage layer; Create reports
// a collision as ErrDuplicateRating rather than inserting a second row.
type RatingRepository interface {
	// FindByUserAndStore retrieves the single rating a user gave a store.
	FindByUserAndStore(ctx context.Context, userID, storeID int64) (*entity.Rating, error)

	// ListByStore retrieves all ratings for a store.
	ListByStore(ctx context.Context, storeID int64) ([]*entity.Rating, error)

	// Create inserts a new rating row.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update overwrites score and comment on an existing rating row.
	Update(ctx context.Context, rating *entity.Rating) error

	// DeleteOwned removes a rating only when it belongs to the requester.
	// The lookup filters by id AND user_id in one statement so a foreign
	// rating and a missing one fail identically with ErrRatingNotFound.
	DeleteOwned(ctx context.Context, id, userID int64) error

	// Count returns the total number of ratings.
	Count(ctx context.Context) (int64, error)

	// StoreAverages returns the mean score per store, for stores that have
	// at least one rating.
	StoreAverages(ctx context.Context) ([]*StoreAverage, error)
}
