package repositories

import (
	"database/sql"
	"fmt"

	"salespipe/internal/models"
)

type RateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

const rateColumns = `id, from_currency, to_currency, rate, effective_date, is_active, created_at`

func (r *RateRepository) Create(er *models.ExchangeRate) (int, error) {
	const q = `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(q,
		er.FromCurrency, er.ToCurrency, er.Rate, er.EffectiveDate, er.IsActive, er.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert exchange rate: %w", err)
	}
	return id, nil
}

func (r *RateRepository) GetByID(id int) (*models.ExchangeRate, error) {
	q := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE id = $1`
	er := &models.ExchangeRate{}
	err := r.db.QueryRow(q, id).Scan(
		&er.ID, &er.FromCurrency, &er.ToCurrency, &er.Rate, &er.EffectiveDate, &er.IsActive, &er.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return er, nil
}

func (r *RateRepository) Update(er *models.ExchangeRate) error {
	const q = `
		UPDATE exchange_rates
		SET from_currency=$1, to_currency=$2, rate=$3, effective_date=$4, is_active=$5
		WHERE id=$6
	`
	_, err := r.db.Exec(q, er.FromCurrency, er.ToCurrency, er.Rate, er.EffectiveDate, er.IsActive, er.ID)
	if err != nil {
		return fmt.Errorf("update exchange rate: %w", err)
	}
	return nil
}

// Deactivate retires a rate without deleting it; historical conversions keep
// their provenance.
func (r *RateRepository) Deactivate(id int) error {
	res, err := r.db.Exec(`UPDATE exchange_rates SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate exchange rate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("exchange rate id=%d not found", id)
	}
	return nil
}

func (r *RateRepository) List() ([]models.ExchangeRate, error) {
	return r.list(`SELECT ` + rateColumns + ` FROM exchange_rates ORDER BY effective_date DESC, id DESC`)
}

// ListActive is the converter's snapshot source. Callers may reuse the slice
// within one aggregation pass but must refetch after any rate edit.
func (r *RateRepository) ListActive() ([]models.ExchangeRate, error) {
	return r.list(`SELECT ` + rateColumns + ` FROM exchange_rates WHERE is_active ORDER BY effective_date DESC, id DESC`)
}

func (r *RateRepository) list(q string) ([]models.ExchangeRate, error) {
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list exchange rates: %w", err)
	}
	defer rows.Close()

	var out []models.ExchangeRate
	for rows.Next() {
		var er models.ExchangeRate
		if err := rows.Scan(&er.ID, &er.FromCurrency, &er.ToCurrency, &er.Rate,
			&er.EffectiveDate, &er.IsActive, &er.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		out = append(out, er)
	}
	return out, rows.Err()
}
