package models

import (
	"time"
)

// Roles as the backend speaks them. The console maps these to capability sets.
const (
	RoleAdmin     = "admin"
	RoleAssistant = "asistente"
	RoleKitchen   = "pizzero"
)

// ValidRole reports whether role is one of the roles the system knows about.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAssistant, RoleKitchen:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Email        string    `json:"email"`
	Role         string    `gorm:"default:'asistente'" json:"role"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
