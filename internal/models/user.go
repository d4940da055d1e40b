package models

import "time"

type UserProfile struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`

	// Hierarchy position. Which fields are required depends on the role:
	// account_manager/manager need a department, head needs a division
	// (plus an entity when entity mode is multi), admin needs nothing.
	EntityID     *int `json:"entity_id,omitempty"`
	DivisionID   *int `json:"division_id,omitempty"`
	DepartmentID *int `json:"department_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
