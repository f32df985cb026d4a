package impl

import (
	"context"
	"log/slog"
	"strings"

	"storerate/config"
	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/domain/service"
	"storerate/internal/usecase"

	"github.com/pkg/errors"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	storeRepo    repository.StoreRepository
	userRepo     repository.UserRepository
	ratingRepo   repository.RatingRepository
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	unratedLimit int
	logger       *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.StoreUsecase {
	return &storeService{
		storeRepo:    storeRepo,
		userRepo:     userRepo,
		ratingRepo:   ratingRepo,
		txManager:    txManager,
		hasher:       hasher,
		unratedLimit: cfg.UnratedLimit(),
		logger:       logger,
	}
}

// Create persists a new store. When the input carries a NewOwnerInput the
// owner account and the store are created in one transaction, so a failed
// store insert never leaves an orphaned owner behind.
func (srv *storeService) Create(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	store := &entity.Store{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Address: input.Address,
		OwnerID: input.OwnerID,
	}

	if input.Owner == nil {
		if err := srv.verifyOwner(ctx, srv.userRepo, input.OwnerID); err != nil {
			return nil, err
		}

		if err := srv.storeRepo.Create(ctx, store); err != nil {
			return nil, err
		}

		return store, nil
	}

	hashedPassword, err := srv.hasher.Hash(input.Owner.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash owner password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		owner := &entity.User{
			Name:         strings.TrimSpace(input.Owner.Name),
			Email:        strings.TrimSpace(input.Owner.Email),
			Address:      input.Owner.Address,
			PasswordHash: hashedPassword,
			Role:         entity.RoleStoreOwner,
		}
		if err := repoFactory.NewUserRepository().Create(ctx, owner); err != nil {
			return err
		}

		store.OwnerID = owner.ID

		return repoFactory.NewStoreRepository().Create(ctx, store)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.InfoContext(ctx, "Store created with new owner",
		slog.Int64("storeID", store.ID),
		slog.Int64("ownerID", store.OwnerID))

	return store, nil
}

// Update modifies an existing store.
func (srv *storeService) Update(ctx context.Context, id int64, input *usecase.UpdateStoreInput) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	if input.Name != "" {
		store.Name = strings.TrimSpace(input.Name)
	}
	if input.Email != "" {
		store.Email = strings.TrimSpace(input.Email)
	}
	if input.Address != "" {
		store.Address = input.Address
	}
	if input.OwnerID > 0 && input.OwnerID != store.OwnerID {
		if err := srv.verifyOwner(ctx, srv.userRepo, input.OwnerID); err != nil {
			return nil, err
		}
		store.OwnerID = input.OwnerID
	}

	if err := srv.storeRepo.Update(ctx, store); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, err
	}

	return store, nil
}

// Delete removes a store.
func (srv *storeService) Delete(ctx context.Context, id int64) error {
	if err := srv.storeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrStoreNotFound
		}

		return err
	}

	srv.logger.InfoContext(ctx, "Store deleted", slog.Int64("storeID", id))

	return nil
}

// Get returns one store with its average and the caller's own score.
func (srv *storeService) Get(ctx context.Context, id, userID int64) (*entity.StoreSummary, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	avg, err := srv.storeRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute average rating")
	}

	summary := &entity.StoreSummary{
		Store:         *store,
		AverageRating: avg,
	}

	if userID > 0 {
		own, err := srv.ratingRepo.FindByUserAndStore(ctx, userID, id)
		if err != nil && !errors.Is(err, repository.ErrRatingNotFound) {
			return nil, errors.Wrap(err, "failed to find caller's rating")
		}
		if own != nil {
			summary.UserRating = &own.Score
		}
	}

	return summary, nil
}

// List returns stores matching the filter, joined with averages.
func (srv *storeService) List(ctx context.Context, filter repository.StoreFilter, userID int64) ([]*entity.StoreSummary, error) {
	summaries, err := srv.storeRepo.List(ctx, filter, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return summaries, nil
}

// Unrated suggests stores the caller has not rated yet.
func (srv *storeService) Unrated(ctx context.Context, userID int64) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.ListUnrated(ctx, userID, srv.unratedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unrated stores")
	}

	return stores, nil
}

// OwnerStores returns the caller's stores with rating history. Raters come
// back without credential material.
func (srv *storeService) OwnerStores(ctx context.Context, ownerID int64) ([]*entity.OwnedStore, error) {
	owned, err := srv.storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores by owner")
	}

	for _, store := range owned {
		for _, rating := range store.Ratings {
			rating.Rater = rating.Rater.Sanitized()
		}
	}

	return owned, nil
}

// verifyOwner checks that the referenced account exists and carries the
// store_owner role.
func (srv *storeService) verifyOwner(ctx context.Context, userRepo repository.UserRepository, ownerID int64) error {
	if ownerID <= 0 {
		return domainerrors.ErrOwnerRequired
	}

	owner, err := userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrOwnerRequired.WrapMessage("owner account not found")
		}

		return errors.Wrap(err, "failed to find owner")
	}

	if owner.Role != entity.RoleStoreOwner {
		return domainerrors.ErrOwnerRequired.WrapMessage("owner must have the store_owner role")
	}

	return nil
}
