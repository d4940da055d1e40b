package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"salespipe/internal/authz"
	"salespipe/internal/models"
	"salespipe/internal/repositories"
	"salespipe/internal/scope"
)

type UserService interface {
	Register(u *models.UserProfile, plainPassword string) error
	GetByID(id int) (*models.UserProfile, error)
	GetByEmail(email string) (*models.UserProfile, error)
	List(entityMode string) ([]UserWithStatus, error)
	CompleteAssignment(id int, role string, entityID, divisionID, departmentID *int) (*models.UserProfile, error)
	CheckPassword(hash, plain string) bool
}

// UserWithStatus decorates a profile with its scoping readiness so the admin
// screen can show who is still pending.
type UserWithStatus struct {
	models.UserProfile
	Pending bool `json:"pending"`
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a profile. New users start unassigned ("pending"): their
// records stay out of hierarchy rollups until an admin completes the
// assignment.
func (s *userService) Register(u *models.UserProfile, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("password is required")
	}
	if !authz.Valid(u.Role) {
		u.Role = authz.RoleAccountManager
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return s.repo.Create(u)
}

func (s *userService) GetByID(id int) (*models.UserProfile, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetByEmail(email string) (*models.UserProfile, error) {
	return s.repo.GetByEmail(strings.TrimSpace(email))
}

func (s *userService) List(entityMode string) ([]UserWithStatus, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]UserWithStatus, 0, len(users))
	for _, u := range users {
		out = append(out, UserWithStatus{UserProfile: u, Pending: !scope.Assigned(u, entityMode)})
	}
	return out, nil
}

func (s *userService) CompleteAssignment(id int, role string, entityID, divisionID, departmentID *int) (*models.UserProfile, error) {
	if !authz.Valid(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err := s.repo.UpdateAssignment(id, role, entityID, divisionID, departmentID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

func (s *userService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(plain))) == nil
}
