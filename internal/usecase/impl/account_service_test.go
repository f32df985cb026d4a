package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storerate/config"
	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/repository"
	"storerate/internal/usecase"
)

func newAccountServiceForTest(userRepo *mockUserRepository, hasher *mockPasswordHasher, tokenService *mockTokenService) usecase.AccountUsecase {
	return NewAccountService(userRepo, hasher, tokenService, &config.Config{}, slog.Default())
}

func TestAccountService_Register(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	ctx := context.Background()

	hasher.On("Hash", "Secret@123").Return("hashed-password", nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = 7
		}).
		Return(nil)

	user, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Sufficiently Long Username",
		Email:    "  new@example.com  ",
		Password: "Secret@123",
		Role:     "user",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ID)
	// Email is trimmed before it reaches storage.
	assert.Equal(t, "new@example.com", user.Email)
	// The raw password never survives; the returned view has no hash either.
	assert.Empty(t, user.PasswordHash)

	userRepo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestAccountService_Register_AdminRoleNotAllowed(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	// The default allowlist covers user and store_owner only.
	_, err := service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Aspiring Administrator Name",
		Email:    "admin@example.com",
		Password: "Secret@123",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, domainerrors.ErrRoleNotAllowed)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	ctx := context.Background()
	hasher.On("Hash", "Secret@123").Return("hashed-password", nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrEmailTaken)

	_, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Sufficiently Long Username",
		Email:    "taken@example.com",
		Password: "Secret@123",
		Role:     "store_owner",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_Login(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	ctx := context.Background()
	stored := &entity.User{
		ID:           7,
		Email:        "login@example.com",
		PasswordHash: "stored-hash",
		Role:         entity.RoleUser,
	}

	userRepo.On("FindByEmail", ctx, "login@example.com").Return(stored, nil)
	hasher.On("Check", "Secret@123", "stored-hash").Return(true)
	tokenService.On("Issue", int64(7), entity.RoleUser).Return("signed-token", nil)

	output, err := service.Login(ctx, &usecase.LoginInput{
		Email:    " login@example.com ",
		Password: "Secret@123",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Equal(t, int64(7), output.User.ID)
	assert.Empty(t, output.User.PasswordHash)
}

func TestAccountService_Login_FailuresIndistinguishable(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	ctx := context.Background()

	// Unknown email.
	userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)
	_, errUnknown := service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	// Known email, wrong password.
	userRepo.On("FindByEmail", ctx, "known@example.com").
		Return(&entity.User{ID: 7, PasswordHash: "stored-hash"}, nil)
	hasher.On("Check", "wrong", "stored-hash").Return(false)
	_, errWrongPassword := service.Login(ctx, &usecase.LoginInput{
		Email:    "known@example.com",
		Password: "wrong",
	})

	// Both failure modes collapse into the same error.
	assert.ErrorIs(t, errUnknown, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, domainerrors.ErrInvalidCredentials)

	tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestAccountService_ChangePassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	ctx := context.Background()
	stored := &entity.User{ID: 7, PasswordHash: "old-hash"}
	userRepo.On("FindByID", ctx, int64(7)).Return(stored, nil)
	hasher.On("Check", "OldSecret@1", "old-hash").Return(true)
	hasher.On("Hash", "NewSecret@1").Return("new-hash", nil)
	userRepo.On("UpdatePassword", ctx, int64(7), "new-hash").Return(nil)

	err := service.ChangePassword(ctx, 7, &usecase.ChangePasswordInput{
		OldPassword: "OldSecret@1",
		NewPassword: "NewSecret@1",
	})
	require.NoError(t, err)

	userRepo.AssertExpectations(t)
}

func TestAccountService_ChangePassword_WrongOldPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)
	service := newAccountServiceForTest(userRepo, hasher, tokenService)

	ctx := context.Background()
	userRepo.On("FindByID", ctx, int64(7)).
		Return(&entity.User{ID: 7, PasswordHash: "old-hash"}, nil)
	hasher.On("Check", "wrong", "old-hash").Return(false)

	err := service.ChangePassword(ctx, 7, &usecase.ChangePasswordInput{
		OldPassword: "wrong",
		NewPassword: "NewSecret@1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)

	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
