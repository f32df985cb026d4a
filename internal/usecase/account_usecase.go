// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storerate/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Role is the requested role; the configured allowlist decides whether the
// request is honored.
type RegisterInput struct {
	Name     string
	Email    string
	Address  string
	Password string
	Role     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ChangePasswordInput carries the credential rotation request.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account with a hashed password. The raw
	// password is discarded immediately after hashing.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues an access token. An unknown
	// email and a wrong password fail with the same error.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Profile returns the account behind a verified token, without
	// credential material.
	Profile(ctx context.Context, userID int64) (*entity.User, error)

	// ChangePassword verifies the old password before storing a new hash.
	ChangePassword(ctx context.Context, userID int64, input *ChangePasswordInput) error
}
