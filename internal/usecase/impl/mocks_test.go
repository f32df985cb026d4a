package impl

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storerate/internal/domain/entity"
	"storerate/internal/domain/repository"
	"storerate/internal/domain/service"
)

// Hand-written testify mocks for the repository and service interfaces.

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)

	return args.Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	args := m.Called(ctx, filter)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockStoreRepository struct {
	mock.Mock
}

func (m *mockStoreRepository) FindByID(ctx context.Context, id int64) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if store, ok := args.Get(0).(*entity.Store); ok {
		return store, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) Create(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *mockStoreRepository) Update(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *mockStoreRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockStoreRepository) List(ctx context.Context, filter repository.StoreFilter, userID int64) ([]*entity.StoreSummary, error) {
	args := m.Called(ctx, filter, userID)
	if summaries, ok := args.Get(0).([]*entity.StoreSummary); ok {
		return summaries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) AverageRating(ctx context.Context, storeID int64) (*float64, error) {
	args := m.Called(ctx, storeID)
	if avg, ok := args.Get(0).(*float64); ok {
		return avg, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) ListUnrated(ctx context.Context, userID int64, limit int) ([]*entity.Store, error) {
	args := m.Called(ctx, userID, limit)
	if stores, ok := args.Get(0).([]*entity.Store); ok {
		return stores, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.OwnedStore, error) {
	args := m.Called(ctx, ownerID)
	if owned, ok := args.Get(0).([]*entity.OwnedStore); ok {
		return owned, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID int64) (*entity.Rating, error) {
	args := m.Called(ctx, userID, storeID)
	if rating, ok := args.Get(0).(*entity.Rating); ok {
		return rating, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) ListByStore(ctx context.Context, storeID int64) ([]*entity.Rating, error) {
	args := m.Called(ctx, storeID)
	if ratings, ok := args.Get(0).([]*entity.Rating); ok {
		return ratings, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)

	return args.Error(0)
}

func (m *mockRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)

	return args.Error(0)
}

func (m *mockRatingRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)

	return args.Error(0)
}

func (m *mockRatingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRatingRepository) StoreAverages(ctx context.Context) ([]*repository.StoreAverage, error) {
	args := m.Called(ctx)
	if averages, ok := args.Get(0).([]*repository.StoreAverage); ok {
		return averages, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID int64, role entity.Role) (string, error) {
	args := m.Called(userID, role)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishRatingEvent(ctx context.Context, event *service.RatingEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// fakeTransactionManager runs the callback directly against a factory of
// mocks, without a real database.
type fakeTransactionManager struct {
	factory repository.RepositoryFactory
}

func (f *fakeTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

type fakeRepositoryFactory struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func (f *fakeRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepositoryFactory) NewStoreRepository() repository.StoreRepository {
	return f.storeRepo
}

func (f *fakeRepositoryFactory) NewRatingRepository() repository.RatingRepository {
	return f.ratingRepo
}
