package entity

import "time"

// Store is a rateable resource owned by exactly one store_owner user.
type Store struct {
	ID        int64     // Auto-generated numeric identifier.
	Name      string    // Store display name.
	Email     string    // Unique contact email for the store.
	Address   string    // Postal address, up to 400 characters.
	OwnerID   int64     // References the owning user, whose role is store_owner.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreSummary is the read model for store listings: the store joined with
// its current average score and, when the caller is authenticated, the
// caller's own score for it.
type StoreSummary struct {
	Store
	AverageRating *float64 // nil when the store has no ratings yet.
	UserRating    *int     // The requesting user's score, nil when absent.
}

// OwnedStore is the read model for the owner dashboard: a store with its
// full rating history attached.
type OwnedStore struct {
	Store
	AverageRating *float64
	Ratings       []*Rating
}
