package services

import (
	"strings"

	"salespipe/internal/models"
	"salespipe/internal/repositories"
	"salespipe/internal/stage"
)

type SettingsService struct {
	repo *repositories.SettingsRepository
}

func NewSettingsService(repo *repositories.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get() (models.Settings, error) {
	return s.repo.Get()
}

func (s *SettingsService) Update(in models.Settings) (models.Settings, error) {
	in.EntityMode = strings.ToLower(strings.TrimSpace(in.EntityMode))
	in.CurrencyMode = strings.ToLower(strings.TrimSpace(in.CurrencyMode))
	in.HomeCurrency = strings.ToUpper(strings.TrimSpace(in.HomeCurrency))
	in.LocalCurrency = strings.ToUpper(strings.TrimSpace(in.LocalCurrency))

	if in.EntityMode != models.EntityModeSingle && in.EntityMode != models.EntityModeMulti {
		return models.Settings{}, &stage.ValidationError{Field: "entity_mode", Reason: "must be single or multi"}
	}
	if in.CurrencyMode != models.CurrencyModeSingle && in.CurrencyMode != models.CurrencyModeDual {
		return models.Settings{}, &stage.ValidationError{Field: "currency_mode", Reason: "must be single or dual"}
	}
	if len(in.HomeCurrency) != 3 {
		return models.Settings{}, &stage.ValidationError{Field: "home_currency", Reason: "three-letter code required"}
	}
	if in.CurrencyMode == models.CurrencyModeDual {
		if len(in.LocalCurrency) != 3 {
			return models.Settings{}, &stage.ValidationError{Field: "local_currency", Reason: "required in dual mode"}
		}
		if in.LocalCurrency == in.HomeCurrency {
			return models.Settings{}, &stage.ValidationError{Field: "local_currency", Reason: "must differ from home currency"}
		}
	} else {
		in.LocalCurrency = ""
	}

	if err := s.repo.Update(in); err != nil {
		return models.Settings{}, err
	}
	return in, nil
}
