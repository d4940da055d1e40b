package models

const (
	EntityModeSingle = "single"
	EntityModeMulti  = "multi"

	CurrencyModeSingle = "single"
	CurrencyModeDual   = "dual"
)

// Settings is the single admin-mutable configuration row. It is loaded per
// request and passed by value into the scope resolver and the currency
// converter; nothing reads it as ambient state.
type Settings struct {
	EntityMode    string `json:"entity_mode"`
	CurrencyMode  string `json:"currency_mode"`
	HomeCurrency  string `json:"home_currency"`
	LocalCurrency string `json:"local_currency,omitempty"`
}
