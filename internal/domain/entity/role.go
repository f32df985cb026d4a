// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
	// RoleUser indicates a regular user who can rate stores.
	RoleUser Role = "user"
	// RoleStoreOwner indicates a user who owns one or more stores.
	RoleStoreOwner Role = "store_owner"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
