package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pizza is a sellable catalog entry. Price must be positive at creation;
// orders copy the price into their total, so later edits never touch
// already-placed orders.
type Pizza struct {
	ID          int             `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Ingredients string          `json:"ingredients"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Available   bool            `gorm:"default:true" json:"available"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
