// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storerate/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows user listings. Zero values mean "no filter".
type UserFilter struct {
	Name    string // Substring match on name.
	Email   string // Substring match on email.
	Address string // Substring match on address.
	Role    entity.Role
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their (trimmed) email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. A duplicate email surfaces as
	// domain errors.ErrEmailTaken.
	Create(ctx context.Context, user *entity.User) error

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// List returns users matching the filter, for the admin views.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
