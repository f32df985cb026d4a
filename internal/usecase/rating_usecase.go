package usecase

import (
	"context"

	"storerate/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitRatingInput carries a user's score for a store.
type SubmitRatingInput struct {
	Score   int
	Comment string
}

// RatingUsecase defines the interface for rating operations. At most one
// rating exists per (user, store) pair; Submit converges on update no
// matter how the calls interleave.
type RatingUsecase interface {
	// Submit records or overwrites the caller's rating for a store.
	// Submitting twice updates the same row; two concurrent first
	// submissions resolve to one row via the storage constraint.
	Submit(ctx context.Context, userID, storeID int64, input *SubmitRatingInput) (*entity.Rating, error)

	// Update overwrites an existing rating and fails with NotFound when
	// the caller has not rated the store yet.
	Update(ctx context.Context, userID, storeID int64, input *SubmitRatingInput) (*entity.Rating, error)

	// Delete removes the caller's own rating by id. A rating owned by
	// someone else is reported exactly like a missing one.
	Delete(ctx context.Context, ratingID, userID int64) error

	// GetOwn returns the caller's rating for a store, if any.
	GetOwn(ctx context.Context, userID, storeID int64) (*entity.Rating, error)

	// ListForStore returns all ratings for a store with rater identities.
	ListForStore(ctx context.Context, storeID int64) ([]*entity.Rating, error)
}
