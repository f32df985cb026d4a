package model

import (
	"time"
)

// RatingModel is the GORM-specific struct for the 'ratings' table.
// The composite unique index closes the submit race: two concurrent first
// submissions for the same (user, store) pair cannot both insert.
type RatingModel struct {
	ID        int64       `gorm:"primaryKey;autoIncrement"`
	UserID    int64       `gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   int64       `gorm:"not null;uniqueIndex:idx_ratings_user_store;index"`
	Score     int         `gorm:"not null;check:score >= 1 AND score <= 5"`
	Comment   string      `gorm:"type:varchar(400)"`
	User      *UserModel  `gorm:"foreignKey:UserID"`
	Store     *StoreModel `gorm:"foreignKey:StoreID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
