package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/models"
	"salespipe/internal/repositories"
	"salespipe/internal/stage"
)

// RateService is the admin surface over the exchange-rate table. Rates are
// append-and-deactivate; nothing is physically deleted.
type RateService struct {
	repo *repositories.RateRepository
}

func NewRateService(repo *repositories.RateRepository) *RateService {
	return &RateService{repo: repo}
}

func validatePair(from, to string, rate decimal.Decimal) error {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if len(from) != 3 {
		return &stage.ValidationError{Field: "from_currency", Reason: "three-letter code required"}
	}
	if len(to) != 3 {
		return &stage.ValidationError{Field: "to_currency", Reason: "three-letter code required"}
	}
	if from == to {
		return &stage.ValidationError{Field: "to_currency", Reason: "pair must use two distinct currencies"}
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return &stage.ValidationError{Field: "rate", Reason: "must be positive"}
	}
	return nil
}

func (s *RateService) Create(er *models.ExchangeRate) (*models.ExchangeRate, error) {
	if err := validatePair(er.FromCurrency, er.ToCurrency, er.Rate); err != nil {
		return nil, err
	}
	er.FromCurrency = strings.ToUpper(strings.TrimSpace(er.FromCurrency))
	er.ToCurrency = strings.ToUpper(strings.TrimSpace(er.ToCurrency))
	if er.EffectiveDate.IsZero() {
		er.EffectiveDate = time.Now()
	}
	er.IsActive = true
	if er.CreatedAt.IsZero() {
		er.CreatedAt = time.Now()
	}
	id, err := s.repo.Create(er)
	if err != nil {
		return nil, err
	}
	er.ID = id
	return er, nil
}

func (s *RateService) Update(id int, er *models.ExchangeRate) (*models.ExchangeRate, error) {
	if err := validatePair(er.FromCurrency, er.ToCurrency, er.Rate); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(id)
	if err != nil || current == nil {
		return nil, err
	}
	current.FromCurrency = strings.ToUpper(strings.TrimSpace(er.FromCurrency))
	current.ToCurrency = strings.ToUpper(strings.TrimSpace(er.ToCurrency))
	current.Rate = er.Rate
	if !er.EffectiveDate.IsZero() {
		current.EffectiveDate = er.EffectiveDate
	}
	if err := s.repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *RateService) Deactivate(id int) error {
	return s.repo.Deactivate(id)
}

func (s *RateService) List() ([]models.ExchangeRate, error) {
	return s.repo.List()
}
