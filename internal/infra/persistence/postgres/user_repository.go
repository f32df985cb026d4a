package postgres

import (
	"context"
	"strings"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by email. The column carries a unique
// index, so at most one row matches.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. A collision on the email unique index comes
// back as the domain's EMAIL_TAKEN error regardless of which of two
// concurrent registrations lost the race.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdatePassword replaces the stored password hash for a user.
func (repo *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// List returns users matching the filter, newest first.
func (repo *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var userModels []*model.UserModel

	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	query = applyLikeFilter(query, "name", filter.Name)
	query = applyLikeFilter(query, "email", filter.Email)
	query = applyLikeFilter(query, "address", filter.Address)
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}

	if err := query.Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Count returns the total number of users.
func (repo *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// applyLikeFilter adds a case-insensitive substring condition when the
// value is non-empty. LOWER + LIKE keeps the query portable across
// postgres and the sqlite used in tests.
func applyLikeFilter(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return query
	}

	return query.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Address:      data.Address,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Address:      data.Address,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
