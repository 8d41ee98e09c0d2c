package models

import (
	"time"
)

type Customer struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Cedula    string    `gorm:"uniqueIndex" json:"cedula"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
