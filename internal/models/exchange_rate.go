package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one time-stamped quote for a currency pair. Several rates
// may exist for the same pair on different dates; the latest active one on or
// before the requested date is authoritative. Rates are deactivated, never
// deleted.
type ExchangeRate struct {
	ID            int             `json:"id"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}
