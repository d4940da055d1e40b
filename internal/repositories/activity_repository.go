package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"salespipe/internal/models"
	"salespipe/internal/scope"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(a *models.Activity) error {
	const q = `
		INSERT INTO activities (subject, description, opportunity_id, owner_id, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`
	return r.db.QueryRow(q, a.Subject, a.Description, a.OpportunityID, a.OwnerID, a.CreatedAt).Scan(&a.ID)
}

// ListRecentScoped feeds the dashboard's truncated activity feed.
func (r *ActivityRepository) ListRecentScoped(sc scope.Scope, limit int) ([]models.Activity, error) {
	q := `SELECT id, subject, description, opportunity_id, owner_id, created_at FROM activities`
	args := []interface{}{}
	if !sc.All {
		q += ` WHERE owner_id = ANY($1)`
		args = append(args, pq.Array(sc.OwnerIDs))
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Subject, &a.Description, &a.OpportunityID, &a.OwnerID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
