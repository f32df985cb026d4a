package impl

import (
	"context"
	"log/slog"

	deliveryctx "storerate/internal/delivery/context"
	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/domain/service"
	"storerate/internal/usecase"

	"github.com/pkg/errors"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	storeRepo repository.StoreRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.RatingUsecase {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Submit records or overwrites the caller's rating for a store. The flow
// is read-then-write, but the unique index on (user_id, store_id) closes
// the race: when two first submissions run concurrently, the losing insert
// comes back as a duplicate and is retried as an update. Either way exactly
// one row exists afterwards and the last write wins.
func (srv *ratingService) Submit(ctx context.Context, userID, storeID int64, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	if !entity.ValidScore(input.Score) {
		return nil, domainerrors.ErrInvalidScore
	}

	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	existing, err := srv.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil && !errors.Is(err, repository.ErrRatingNotFound) {
		return nil, errors.Wrap(err, "failed to find existing rating")
	}

	if existing != nil {
		rating, err := srv.overwrite(ctx, existing, input)
		if err != nil {
			return nil, err
		}

		srv.publish(ctx, service.EventRatingSubmitted, rating)

		return rating, nil
	}

	rating := &entity.Rating{
		UserID:  userID,
		StoreID: storeID,
		Score:   input.Score,
		Comment: input.Comment,
	}

	err = srv.ratingRepo.Create(ctx, rating)
	if errors.Is(err, repository.ErrDuplicateRating) {
		// Lost the race against a concurrent first submission: the row
		// now exists, so converge on the update path.
		existing, findErr := srv.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "failed to load rating after duplicate insert")
		}

		rating, err = srv.overwrite(ctx, existing, input)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	srv.publish(ctx, service.EventRatingSubmitted, rating)

	return rating, nil
}

// Update overwrites an existing rating. Unlike Submit it refuses to create
// one: rating a store you have not rated yet through this path is NotFound.
func (srv *ratingService) Update(ctx context.Context, userID, storeID int64, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	if !entity.ValidScore(input.Score) {
		return nil, domainerrors.ErrInvalidScore
	}

	existing, err := srv.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, domainerrors.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find existing rating")
	}

	rating, err := srv.overwrite(ctx, existing, input)
	if err != nil {
		return nil, err
	}

	srv.publish(ctx, service.EventRatingSubmitted, rating)

	return rating, nil
}

// Delete removes the caller's own rating.
func (srv *ratingService) Delete(ctx context.Context, ratingID, userID int64) error {
	if err := srv.ratingRepo.DeleteOwned(ctx, ratingID, userID); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return domainerrors.ErrRatingNotFound
		}

		return err
	}

	srv.publish(ctx, service.EventRatingDeleted, &entity.Rating{ID: ratingID, UserID: userID})

	return nil
}

// GetOwn returns the caller's rating for a store, if any.
func (srv *ratingService) GetOwn(ctx context.Context, userID, storeID int64) (*entity.Rating, error) {
	rating, err := srv.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, domainerrors.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating")
	}

	return rating, nil
}

// ListForStore returns all ratings for a store with sanitized rater identities.
func (srv *ratingService) ListForStore(ctx context.Context, storeID int64) ([]*entity.Rating, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	ratings, err := srv.ratingRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	for _, rating := range ratings {
		rating.Rater = rating.Rater.Sanitized()
	}

	return ratings, nil
}

// overwrite applies score and comment onto an existing row.
func (srv *ratingService) overwrite(ctx context.Context, existing *entity.Rating, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	existing.Score = input.Score
	existing.Comment = input.Comment

	if err := srv.ratingRepo.Update(ctx, existing); err != nil {
		return nil, errors.Wrap(err, "failed to update rating")
	}

	return existing, nil
}

// publish emits a rating event. Publishing is best-effort: a broker outage
// is logged and never fails the caller's request.
func (srv *ratingService) publish(ctx context.Context, event string, rating *entity.Rating) {
	ratingEvent := &service.RatingEvent{
		Event:     event,
		RequestID: deliveryctx.GetRequestIDFromContext(ctx),
		RatingID:  rating.ID,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Score:     rating.Score,
	}

	if err := srv.publisher.PublishRatingEvent(ctx, ratingEvent); err != nil {
		srv.logger.WarnContext(ctx, "Failed to publish rating event",
			"error", err,
			slog.String("event", event),
			slog.Int64("ratingID", rating.ID))
	}
}
