package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"salespipe/internal/models"
	"salespipe/internal/scope"
	"salespipe/internal/stage"
)

type OpportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

const oppColumns = `id, name, amount, currency, stage, status, probability, owner_id,
	evidence_prospecting, evidence_qualification, evidence_discovery,
	next_step_title, next_step_due, loss_reason, created_at, last_activity_at, closed_at`

func (r *OpportunityRepository) Create(o *models.Opportunity) (int, error) {
	const q = `
		INSERT INTO opportunities (
			name, amount, currency, stage, status, probability, owner_id,
			evidence_prospecting, evidence_qualification, evidence_discovery,
			next_step_title, next_step_due, loss_reason, created_at, last_activity_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`
	title, due := nextStepFields(o.NextStep)
	var id int
	err := r.db.QueryRow(q,
		o.Name, o.Amount, o.Currency, o.Stage.String(), o.Status, o.Probability, o.OwnerID,
		o.Evidence.Prospecting, o.Evidence.Qualification, o.Evidence.Discovery,
		title, due, o.LossReason, o.CreatedAt, o.LastActivityAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert opportunity: %w", err)
	}
	return id, nil
}

func (r *OpportunityRepository) GetByID(id int) (*models.Opportunity, error) {
	q := `SELECT ` + oppColumns + ` FROM opportunities WHERE id = $1`
	o, err := scanOpportunity(r.db.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get opportunity by id: %w", err)
	}
	return o, nil
}

// Update persists the full lifecycle patch in one statement so a transition
// lands atomically (stage, status, probability, evidence, next step,
// timestamps) or not at all.
func (r *OpportunityRepository) Update(o *models.Opportunity) error {
	const q = `
		UPDATE opportunities SET
			name=$1, amount=$2, currency=$3, stage=$4, status=$5, probability=$6,
			owner_id=$7,
			evidence_prospecting=$8, evidence_qualification=$9, evidence_discovery=$10,
			next_step_title=$11, next_step_due=$12, loss_reason=$13,
			last_activity_at=$14, closed_at=$15
		WHERE id=$16
	`
	title, due := nextStepFields(o.NextStep)
	res, err := r.db.Exec(q,
		o.Name, o.Amount, o.Currency, o.Stage.String(), o.Status, o.Probability,
		o.OwnerID,
		o.Evidence.Prospecting, o.Evidence.Qualification, o.Evidence.Discovery,
		title, due, o.LossReason,
		o.LastActivityAt, o.ClosedAt,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("opportunity id=%d not found", o.ID)
	}
	return nil
}

// ListScoped returns opportunities visible inside the scope, newest first.
// The owner-set predicate is pushed into SQL via = ANY for hierarchy scopes.
func (r *OpportunityRepository) ListScoped(sc scope.Scope, limit, offset int) ([]*models.Opportunity, error) {
	q := `SELECT ` + oppColumns + ` FROM opportunities`
	args := []interface{}{}
	if !sc.All {
		q += ` WHERE owner_id = ANY($1)`
		args = append(args, pq.Array(sc.OwnerIDs))
	}
	q += fmt.Sprintf(` ORDER BY last_activity_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var out []*models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Filter narrows a scoped listing by caller-supplied equality/range filters.
func (r *OpportunityRepository) Filter(sc scope.Scope, status, stageLabel, fromDate, toDate string, limit, offset int) ([]*models.Opportunity, error) {
	q := `SELECT ` + oppColumns + ` FROM opportunities WHERE 1=1`
	args := []interface{}{}
	i := 1

	if !sc.All {
		q += fmt.Sprintf(" AND owner_id = ANY($%d)", i)
		args = append(args, pq.Array(sc.OwnerIDs))
		i++
	}
	if status != "" {
		q += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, status)
		i++
	}
	if stageLabel != "" {
		if st, ok := stage.Normalize(stageLabel); ok {
			q += fmt.Sprintf(" AND stage = $%d", i)
			args = append(args, st.String())
			i++
		}
	}
	if fromDate != "" {
		q += fmt.Sprintf(" AND created_at >= $%d", i)
		args = append(args, fromDate)
		i++
	}
	if toDate != "" {
		q += fmt.Sprintf(" AND created_at <= $%d", i)
		args = append(args, toDate)
		i++
	}

	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOpportunity is the storage boundary for stage labels: whatever legacy
// spelling sits in the row is normalized here, and unrecognized labels are
// flagged instead of silently dropped.
func scanOpportunity(row rowScanner) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	var (
		rawStage   string
		nextTitle  sql.NullString
		nextDue    sql.NullTime
		lossReason sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.Name, &o.Amount, &o.Currency, &rawStage, &o.Status, &o.Probability, &o.OwnerID,
		&o.Evidence.Prospecting, &o.Evidence.Qualification, &o.Evidence.Discovery,
		&nextTitle, &nextDue, &lossReason, &o.CreatedAt, &o.LastActivityAt, &o.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	st, ok := stage.Normalize(rawStage)
	o.Stage = st
	o.StageFlagged = !ok
	if nextDue.Valid {
		o.NextStep = &models.NextStep{Title: nextTitle.String, DueDate: nextDue.Time}
	}
	o.LossReason = lossReason.String
	return o, nil
}

func nextStepFields(n *models.NextStep) (sql.NullString, sql.NullTime) {
	if n == nil {
		return sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: n.Title, Valid: true}, sql.NullTime{Time: n.DueDate, Valid: true}
}
