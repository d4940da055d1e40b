package services

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/models"
	"salespipe/internal/repositories"
	"salespipe/internal/scope"
	"salespipe/internal/stage"
)

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type TargetService struct {
	repo *repositories.TargetRepository
}

func NewTargetService(repo *repositories.TargetRepository) *TargetService {
	return &TargetService{repo: repo}
}

func validateTarget(t *models.SalesTarget) error {
	if t.OwnerID <= 0 {
		return &stage.ValidationError{Field: "owner_id", Reason: "required"}
	}
	if !periodRe.MatchString(t.Period) {
		return &stage.ValidationError{Field: "period", Reason: "expected YYYY-MM"}
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return &stage.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if len(t.Currency) != 3 {
		return &stage.ValidationError{Field: "currency", Reason: "three-letter code required"}
	}
	return nil
}

func (s *TargetService) Create(t *models.SalesTarget) (*models.SalesTarget, error) {
	if err := validateTarget(t); err != nil {
		return nil, err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	id, err := s.repo.Create(t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

func (s *TargetService) Update(id int, t *models.SalesTarget) (*models.SalesTarget, error) {
	if err := validateTarget(t); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(id)
	if err != nil || current == nil {
		return nil, err
	}
	current.OwnerID = t.OwnerID
	current.Period = t.Period
	current.Amount = t.Amount
	current.Currency = t.Currency
	if err := s.repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *TargetService) ListScoped(sc scope.Scope, period string) ([]models.SalesTarget, error) {
	return s.repo.ListScoped(sc, period)
}
