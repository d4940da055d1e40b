package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesTarget is a per-owner revenue target for one period ("2025-06").
type SalesTarget struct {
	ID        int             `json:"id"`
	OwnerID   int             `json:"owner_id"`
	Period    string          `json:"period"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}
