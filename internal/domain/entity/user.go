// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity in the system. The password is never held here
// in plaintext; only the bcrypt hash survives registration.
type User struct {
	ID           int64     // Auto-generated numeric identifier.
	Name         string    // Display name, 20-60 characters by policy.
	Email        string    // Globally unique login identifier, stored trimmed.
	Address      string    // Optional postal address, up to 400 characters.
	PasswordHash string    // bcrypt hash of the password. Never exposed via the API.
	Role         Role      // Immutable after creation.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// Sanitized returns a copy of the user with the credential material removed,
// suitable for returning across the API boundary.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""

	return &clone
}
