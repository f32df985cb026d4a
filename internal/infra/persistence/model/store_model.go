package model

import (
	"time"
)

// StoreModel is the GORM-specific struct for the 'stores' table.
type StoreModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(60);not null"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_stores_email"`
	Address   string `gorm:"type:varchar(400)"`
	OwnerID   int64          `gorm:"not null;index"`
	Owner     *UserModel     `gorm:"foreignKey:OwnerID"`
	Ratings   []*RatingModel `gorm:"foreignKey:StoreID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
