package service

import (
	"github.com/golang-jwt/jwt/v5"

	"storerate/internal/domain/entity"
)

// Claims defines the custom claims carried by an access token. Identity
// and role on a request come only from here, never from the request body.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed access token embedding the user's identity and role.
	Issue(userID int64, role entity.Role) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// Tampered and expired tokens fail alike; callers must not distinguish
	// the two externally.
	Verify(tokenString string) (*Claims, error)
}
