package entity

import "time"

// Score bounds for a rating. The range is enforced at the boundary and
// mirrored by a CHECK constraint at the storage layer.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a single user's verdict on a single store. The system holds at
// most one Rating per (UserID, StoreID) pair; repeated submissions update
// the existing row in place.
type Rating struct {
	ID        int64
	UserID    int64
	StoreID   int64
	Score     int    // Integer in [MinScore, MaxScore].
	Comment   string // Optional free text.
	Rater     *User  // Populated on owner-facing reads; nil elsewhere.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidScore reports whether a score lies within the accepted range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
