package repositories

import (
	"database/sql"
	"fmt"

	"salespipe/internal/models"
)

// SettingsRepository manages the single admin-mutable configuration row.
type SettingsRepository struct {
	db       *sql.DB
	defaults models.Settings
}

// NewSettingsRepository takes the config-file defaults used until an admin
// has saved an explicit row.
func NewSettingsRepository(db *sql.DB, defaults models.Settings) *SettingsRepository {
	return &SettingsRepository{db: db, defaults: defaults}
}

func (r *SettingsRepository) Get() (models.Settings, error) {
	const q = `SELECT entity_mode, currency_mode, home_currency, local_currency FROM system_settings WHERE id = 1`
	var s models.Settings
	var local sql.NullString
	err := r.db.QueryRow(q).Scan(&s.EntityMode, &s.CurrencyMode, &s.HomeCurrency, &local)
	if err == sql.ErrNoRows {
		return r.defaults, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	s.LocalCurrency = local.String
	return s, nil
}

func (r *SettingsRepository) Update(s models.Settings) error {
	const q = `
		INSERT INTO system_settings (id, entity_mode, currency_mode, home_currency, local_currency)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			entity_mode = EXCLUDED.entity_mode,
			currency_mode = EXCLUDED.currency_mode,
			home_currency = EXCLUDED.home_currency,
			local_currency = EXCLUDED.local_currency
	`
	var local sql.NullString
	if s.LocalCurrency != "" {
		local = sql.NullString{String: s.LocalCurrency, Valid: true}
	}
	if _, err := r.db.Exec(q, s.EntityMode, s.CurrencyMode, s.HomeCurrency, local); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
