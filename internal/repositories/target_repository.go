package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"salespipe/internal/models"
	"salespipe/internal/scope"
)

type TargetRepository struct {
	db *sql.DB
}

func NewTargetRepository(db *sql.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

const targetColumns = `id, owner_id, period, amount, currency, created_at`

func (r *TargetRepository) Create(t *models.SalesTarget) (int, error) {
	const q = `
		INSERT INTO sales_targets (owner_id, period, amount, currency, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(q, t.OwnerID, t.Period, t.Amount, t.Currency, t.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sales target: %w", err)
	}
	return id, nil
}

func (r *TargetRepository) GetByID(id int) (*models.SalesTarget, error) {
	q := `SELECT ` + targetColumns + ` FROM sales_targets WHERE id = $1`
	t := &models.SalesTarget{}
	err := r.db.QueryRow(q, id).Scan(&t.ID, &t.OwnerID, &t.Period, &t.Amount, &t.Currency, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TargetRepository) Update(t *models.SalesTarget) error {
	const q = `UPDATE sales_targets SET owner_id=$1, period=$2, amount=$3, currency=$4 WHERE id=$5`
	_, err := r.db.Exec(q, t.OwnerID, t.Period, t.Amount, t.Currency, t.ID)
	if err != nil {
		return fmt.Errorf("update sales target: %w", err)
	}
	return nil
}

func (r *TargetRepository) ListScoped(sc scope.Scope, period string) ([]models.SalesTarget, error) {
	q := `SELECT ` + targetColumns + ` FROM sales_targets WHERE 1=1`
	args := []interface{}{}
	i := 1
	if !sc.All {
		q += fmt.Sprintf(" AND owner_id = ANY($%d)", i)
		args = append(args, pq.Array(sc.OwnerIDs))
		i++
	}
	if period != "" {
		q += fmt.Sprintf(" AND period = $%d", i)
		args = append(args, period)
		i++
	}
	q += " ORDER BY period DESC, owner_id"

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales targets: %w", err)
	}
	defer rows.Close()

	var out []models.SalesTarget
	for rows.Next() {
		var t models.SalesTarget
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Period, &t.Amount, &t.Currency, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales target: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
