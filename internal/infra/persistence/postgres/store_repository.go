package postgres

import (
	"context"
	"database/sql"
	"time"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// storeSummaryRow is the flat scan target for the aggregated store listing.
type storeSummaryRow struct {
	ID            int64
	Name          string
	Email         string
	Address       string
	OwnerID       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AverageRating *float64
	UserRating    *int
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id int64) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	return toStoreDomain(&storeM), nil
}

// Create persists a new store.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreEmailTaken
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOwnerRequired
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	// Update the entity with generated values
	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies name, email, address and owner of an existing store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"name":     store.Name,
			"email":    store.Email,
			"address":  store.Address,
			"owner_id": store.OwnerID,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrStoreEmailTaken
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrOwnerRequired
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// Delete removes a store by its ID.
func (repo *storeRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StoreModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// List returns stores matching the filter, each row joined with the mean of
// its scores and, when userID > 0, the caller's own score. Averages are
// computed at query time; no denormalized counters exist to drift.
func (repo *storeRepository) List(ctx context.Context, filter repository.StoreFilter, userID int64) ([]*entity.StoreSummary, error) {
	selectClause := "stores.*, AVG(ratings.score) AS average_rating"
	args := []any{}
	if userID > 0 {
		selectClause += ", MAX(CASE WHEN ratings.user_id = ? THEN ratings.score END) AS user_rating"
		args = append(args, userID)
	}

	query := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Select(selectClause, args...).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id")

	query = applyLikeFilter(query, "stores.name", filter.Name)
	query = applyLikeFilter(query, "stores.email", filter.Email)
	query = applyLikeFilter(query, "stores.address", filter.Address)

	switch filter.SortByRating {
	case "asc":
		query = query.Order("average_rating ASC")
	case "desc":
		query = query.Order("average_rating DESC")
	default:
		query = query.Order("stores.created_at DESC")
	}

	var rows []*storeSummaryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	summaries := make([]*entity.StoreSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &entity.StoreSummary{
			Store: entity.Store{
				ID:        row.ID,
				Name:      row.Name,
				Email:     row.Email,
				Address:   row.Address,
				OwnerID:   row.OwnerID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			AverageRating: row.AverageRating,
			UserRating:    row.UserRating,
		})
	}

	return summaries, nil
}

// AverageRating computes the mean score of a store at query time.
// A store with no ratings yields nil, never zero.
func (repo *storeRepository) AverageRating(ctx context.Context, storeID int64) (*float64, error) {
	var avg sql.NullFloat64

	row := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("AVG(score)").
		Where("store_id = ?", storeID).
		Row()

	if err := row.Scan(&avg); err != nil {
		return nil, errors.Wrap(err, "failed to compute average rating")
	}

	if !avg.Valid {
		return nil, nil
	}

	return &avg.Float64, nil
}

// ListUnrated returns up to limit stores with no ratings at all. When every
// store has at least one rating it falls back to stores the given user has
// not rated yet. The globally-unrated query runs first; the personal query
// only when it came back empty.
func (repo *storeRepository) ListUnrated(ctx context.Context, userID int64, limit int) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	ratedStores := repo.db.Model(&model.RatingModel{}).Distinct("store_id")

	if err := repo.db.WithContext(ctx).
		Where("id NOT IN (?)", ratedStores).
		Order("created_at DESC").
		Limit(limit).
		Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list unrated stores")
	}

	if len(storeModels) == 0 && userID > 0 {
		ratedByUser := repo.db.Model(&model.RatingModel{}).
			Select("store_id").
			Where("user_id = ?", userID)

		if err := repo.db.WithContext(ctx).
			Where("id NOT IN (?)", ratedByUser).
			Order("created_at DESC").
			Limit(limit).
			Find(&storeModels).Error; err != nil {
			return nil, errors.Wrap(err, "failed to list stores unrated by user")
		}
	}

	stores := make([]*entity.Store, 0, len(storeModels))
	for _, storeM := range storeModels {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores, nil
}

// ListByOwner returns the stores owned by a user, with ratings and rater
// identities attached for the owner dashboard.
func (repo *storeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.OwnedStore, error) {
	var storeModels []*model.StoreModel

	if err := repo.db.WithContext(ctx).
		Preload("Ratings.User").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores by owner")
	}

	owned := make([]*entity.OwnedStore, 0, len(storeModels))
	for _, storeM := range storeModels {
		ratings := make([]*entity.Rating, 0, len(storeM.Ratings))
		var sum int
		for _, ratingM := range storeM.Ratings {
			ratings = append(ratings, toRatingDomain(ratingM))
			sum += ratingM.Score
		}

		var avg *float64
		if len(storeM.Ratings) > 0 {
			value := float64(sum) / float64(len(storeM.Ratings))
			avg = &value
		}

		owned = append(owned, &entity.OwnedStore{
			Store:         *toStoreDomain(storeM),
			AverageRating: avg,
			Ratings:       ratings,
		})
	}

	return owned, nil
}

// Count returns the total number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

// --- Mapper Functions ---

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
