// Package model holds the GORM-specific structs mirroring database tables,
// kept separate from domain entities.
package model

import (
	"time"
)

// UserModel is the GORM-specific struct for the 'users' table.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(60);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Address      string `gorm:"type:varchar(400)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'user';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
