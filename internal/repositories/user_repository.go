package repositories

import (
	"database/sql"
	"fmt"

	"salespipe/internal/models"
)

type UserRepository interface {
	Create(user *models.UserProfile) error
	GetByID(id int) (*models.UserProfile, error)
	GetByEmail(email string) (*models.UserProfile, error)
	List() ([]models.UserProfile, error)
	UpdateAssignment(id int, role string, entityID, divisionID, departmentID *int) error
	Count() (int, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, entity_id, division_id, department_id, created_at`

func (r *userRepository) Create(u *models.UserProfile) error {
	const q = `
		INSERT INTO users (name, email, password_hash, role, entity_id, division_id, department_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	return r.db.QueryRow(q,
		u.Name, u.Email, u.PasswordHash, u.Role,
		u.EntityID, u.DivisionID, u.DepartmentID, u.CreatedAt,
	).Scan(&u.ID)
}

func (r *userRepository) GetByID(id int) (*models.UserProfile, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.UserProfile, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRow(q, email))
}

// List returns the whole user population. Scope resolution walks it in
// memory; the table is small by construction (it is the org chart).
func (r *userRepository) List() ([]models.UserProfile, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.UserProfile
	for rows.Next() {
		var u models.UserProfile
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&u.EntityID, &u.DivisionID, &u.DepartmentID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateAssignment is the admin completing (or changing) a profile's
// hierarchy position.
func (r *userRepository) UpdateAssignment(id int, role string, entityID, divisionID, departmentID *int) error {
	const q = `
		UPDATE users SET role=$1, entity_id=$2, division_id=$3, department_id=$4
		WHERE id=$5
	`
	res, err := r.db.Exec(q, role, entityID, divisionID, departmentID, id)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user id=%d not found", id)
	}
	return nil
}

func (r *userRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *userRepository) scanOne(row *sql.Row) (*models.UserProfile, error) {
	u := &models.UserProfile{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.EntityID, &u.DivisionID, &u.DepartmentID, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
