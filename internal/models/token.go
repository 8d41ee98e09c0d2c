package models

import (
	"time"
)

// AuthToken is one issued bearer token, keyed by its jti claim. A token whose
// row is gone is revoked; logout deletes the row and /auth/validate checks it.
type AuthToken struct {
	ID        string    `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
