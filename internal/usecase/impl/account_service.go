// Package impl contains the concrete implementations of the usecase interfaces.
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

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	allowedRoles entity.Roles
	logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AccountUsecase {
	allowed := make(entity.Roles, 0, len(cfg.AllowedRegistrationRoles()))
	for _, role := range cfg.AllowedRegistrationRoles() {
		allowed = append(allowed, entity.Role(role))
	}

	return &accountService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		allowedRoles: allowed,
		logger:       logger,
	}
}

// Register creates a new account. The requested role must be on the
// configured allowlist; admin accounts are provisioned out of band unless
// the deployment explicitly opens that up.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(input.Email)

	role := entity.Role(input.Role)
	if role == "" {
		role = entity.RoleUser
	}
	if !role.IsValid() || !srv.allowedRoles.Contains(role) {
		return nil, domainerrors.ErrRoleNotAllowed
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.ErrorContext(ctx, "Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Address:      input.Address,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// The email unique index arbitrates concurrent registrations; the
	// loser surfaces as EMAIL_TAKEN without any pre-check race.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	srv.logger.InfoContext(ctx, "Account registered",
		slog.Int64("userID", newUser.ID),
		slog.String("role", newUser.Role.String()))

	return newUser.Sanitized(), nil
}

// Login verifies credentials and issues an access token. An unknown email
// and a wrong password deliberately return the same error so the endpoint
// does not reveal which accounts exist.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.Issue(user.ID, user.Role)
	if err != nil {
		srv.logger.ErrorContext(ctx, "Failed to issue access token", "error", err, "userID", user.ID)

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.LoginOutput{
		AccessToken: token,
		User:        user.Sanitized(),
	}, nil
}

// Profile returns the account behind a verified token.
func (srv *accountService) Profile(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return user.Sanitized(), nil
}

// ChangePassword verifies the old password before storing a new hash.
func (srv *accountService) ChangePassword(ctx context.Context, userID int64, input *usecase.ChangePasswordInput) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find user by ID")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		return domainerrors.ErrPasswordMismatch
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.logger.InfoContext(ctx, "Password changed", slog.Int64("userID", userID))

	return nil
}
