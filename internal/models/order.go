package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values, as the backend speaks them.
//
// StatusPreparing is part of the wire contract (GET /pedido/estado/:estado
// accepts it) but no transition in the system produces it: the only exposed
// transition is Pendiente -> Entregado, and Entregado is terminal.
const (
	StatusPending   = "Pendiente"
	StatusPreparing = "En_Preparacion"
	StatusDelivered = "Entregado"
)

// ValidStatus reports whether s is a status the contract declares.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusDelivered:
		return true
	}
	return false
}

// Order is a customer request for Quantity units of one pizza.
// Total is fixed at placement time (unit price x quantity) and is never
// recomputed, even if the catalog price changes afterwards.
type Order struct {
	ID            int             `gorm:"primaryKey" json:"id"`
	PizzaID       int             `gorm:"not null" json:"pizzaId"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	CustomerName  string          `gorm:"not null" json:"customerName"`
	CustomerPhone string          `gorm:"not null" json:"customerPhone"`
	Notes         string          `json:"notes"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Status        string          `gorm:"default:'Pendiente'" json:"status"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
