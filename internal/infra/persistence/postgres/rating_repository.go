package postgres

import (
	"context"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ratingRepository implements the repository.RatingRepository interface.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

// FindByUserAndStore retrieves the single rating a user gave a store.
func (repo *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID int64) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by user and store")
	}

	return toRatingDomain(&ratingM), nil
}

// ListByStore retrieves all ratings for a store, newest first, with the
// rater identity attached.
func (repo *ratingRepository) ListByStore(ctx context.Context, storeID int64) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ?", storeID).
		Order("updated_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	ratings := make([]*entity.Rating, 0, len(ratingModels))
	for _, ratingM := range ratingModels {
		ratings = append(ratings, toRatingDomain(ratingM))
	}

	return ratings, nil
}

// Create inserts a new rating row. A collision on the (user_id, store_id)
// unique index comes back as ErrDuplicateRating so the caller can retry as
// an update; the index itself guarantees the losing insert never lands.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRating
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidScore
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	// Update the entity with generated values
	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Update overwrites score and comment on an existing rating row.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("id = ?", rating.ID).
		Updates(map[string]any{
			"score":   rating.Score,
			"comment": rating.Comment,
		})

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidScore
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// DeleteOwned removes a rating only when it belongs to the requester. The
// single statement filters by id AND user_id, so a rating owned by someone
// else is indistinguishable from a missing one.
func (repo *ratingRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.RatingModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete rating")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// Count returns the total number of ratings.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

// StoreAverages returns the mean score per store that has ratings.
func (repo *ratingRepository) StoreAverages(ctx context.Context) ([]*repository.StoreAverage, error) {
	var averages []*repository.StoreAverage

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("store_id, AVG(score) AS average_rating").
		Group("store_id").
		Scan(&averages).Error; err != nil {
		return nil, errors.Wrap(err, "failed to compute store averages")
	}

	return averages, nil
}

// --- Mapper Functions ---

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Score:     data.Score,
		Comment:   data.Comment,
		Rater:     toUserDomain(data.User),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:      data.ID,
		UserID:  data.UserID,
		StoreID: data.StoreID,
		Score:   data.Score,
		Comment: data.Comment,
	}
}
