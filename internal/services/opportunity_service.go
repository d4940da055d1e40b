package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"salespipe/internal/models"
	"salespipe/internal/scope"
	"salespipe/internal/stage"
)

var ErrForbidden = errors.New("record outside the requester's scope")

// OpportunityStore is the slice of the external record store this service
// needs. The concrete implementation lives in repositories; tests use fakes.
type OpportunityStore interface {
	Create(o *models.Opportunity) (int, error)
	GetByID(id int) (*models.Opportunity, error)
	Update(o *models.Opportunity) error
	ListScoped(sc scope.Scope, limit, offset int) ([]*models.Opportunity, error)
	Filter(sc scope.Scope, status, stageLabel, fromDate, toDate string, limit, offset int) ([]*models.Opportunity, error)
}

// ActivitySink receives lifecycle events. Write failures never fail the
// primary transition.
type ActivitySink interface {
	Insert(a *models.Activity) error
}

type OpportunityService struct {
	repo     OpportunityStore
	activity ActivitySink
	log      *logrus.Logger
	now      func() time.Time
}

func NewOpportunityService(repo OpportunityStore, activity ActivitySink, log *logrus.Logger) *OpportunityService {
	return &OpportunityService{repo: repo, activity: activity, log: log, now: time.Now}
}

// Create opens a new opportunity in Prospecting. Stage, status and
// probability are owned by the lifecycle; caller input for them is ignored.
func (s *OpportunityService) Create(o *models.Opportunity) (*models.Opportunity, error) {
	now := s.now()
	o.Stage = stage.Prospecting
	o.Status = models.StatusOpen
	o.Probability = stage.Prospecting.Probability()
	o.Evidence = models.EvidenceBundle{}
	o.LossReason = ""
	o.ClosedAt = nil
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.LastActivityAt = o.CreatedAt

	id, err := s.repo.Create(o)
	if err != nil {
		return nil, err
	}
	o.ID = id
	return o, nil
}

// GetVisible loads a record and enforces the requester's scope on it.
func (s *OpportunityService) GetVisible(id int, sc scope.Scope) (*models.Opportunity, error) {
	o, err := s.repo.GetByID(id)
	if err != nil || o == nil {
		return nil, err
	}
	if !sc.Allows(o.OwnerID) {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *OpportunityService) ListScoped(sc scope.Scope, limit, offset int) ([]*models.Opportunity, error) {
	return s.repo.ListScoped(sc, limit, offset)
}

func (s *OpportunityService) Filter(sc scope.Scope, status, stageLabel, from, to string, limit, offset int) ([]*models.Opportunity, error) {
	return s.repo.Filter(sc, status, stageLabel, from, to, limit, offset)
}

// UpdateDetails changes the non-lifecycle fields only. Stage, status,
// probability, evidence and close data move exclusively through the
// transition calls below.
func (s *OpportunityService) UpdateDetails(id int, sc scope.Scope, name string, patch *models.Opportunity) (*models.Opportunity, error) {
	o, err := s.GetVisible(id, sc)
	if err != nil || o == nil {
		return nil, err
	}
	upd := *o
	if name != "" {
		upd.Name = name
	}
	if patch != nil {
		if !patch.Amount.IsZero() {
			upd.Amount = patch.Amount
		}
		if patch.Currency != "" {
			upd.Currency = patch.Currency
		}
	}
	upd.LastActivityAt = s.now()
	if err := s.repo.Update(&upd); err != nil {
		return nil, err
	}
	return &upd, nil
}

// Advance runs the stage machine on a copy, persists the full patch in one
// write, then emits the activity event.
func (s *OpportunityService) Advance(id int, sc scope.Scope, evidence string, next models.NextStep) (*models.Opportunity, error) {
	o, err := s.GetVisible(id, sc)
	if err != nil || o == nil {
		return nil, err
	}
	upd := *o
	if err := AdvanceStage(&upd, evidence, next, s.now()); err != nil {
		if errors.Is(err, stage.ErrAlreadyTerminal) {
			return o, err // record unchanged; caller decides how to surface the no-op
		}
		return nil, err
	}
	if err := s.repo.Update(&upd); err != nil {
		return nil, err
	}
	s.emit(&upd, "Stage advanced", fmt.Sprintf("%q moved from %s to %s", upd.Name, o.Stage, upd.Stage))
	return &upd, nil
}

func (s *OpportunityService) MarkWon(id int, sc scope.Scope) (*models.Opportunity, error) {
	o, err := s.GetVisible(id, sc)
	if err != nil || o == nil {
		return nil, err
	}
	upd := *o
	if err := MarkWon(&upd, s.now()); err != nil {
		if errors.Is(err, stage.ErrAlreadyTerminal) {
			return o, err
		}
		return nil, err
	}
	if err := s.repo.Update(&upd); err != nil {
		return nil, err
	}
	s.emit(&upd, "Opportunity won", fmt.Sprintf("%q closed as won", upd.Name))
	return &upd, nil
}

func (s *OpportunityService) MarkLost(id int, sc scope.Scope, reason, note string) (*models.Opportunity, error) {
	o, err := s.GetVisible(id, sc)
	if err != nil || o == nil {
		return nil, err
	}
	upd := *o
	if err := MarkLost(&upd, reason, note, s.now()); err != nil {
		if errors.Is(err, stage.ErrAlreadyTerminal) {
			return o, err
		}
		return nil, err
	}
	if err := s.repo.Update(&upd); err != nil {
		return nil, err
	}
	s.emit(&upd, "Opportunity lost", fmt.Sprintf("%q closed as lost: %s", upd.Name, upd.LossReason))
	return &upd, nil
}

// emit writes the activity event; a sink failure is logged and swallowed so
// the already-persisted transition stands.
func (s *OpportunityService) emit(o *models.Opportunity, subject, description string) {
	if s.activity == nil {
		return
	}
	err := s.activity.Insert(&models.Activity{
		Subject:       subject,
		Description:   description,
		OpportunityID: o.ID,
		OwnerID:       o.OwnerID,
		CreatedAt:     s.now(),
	})
	if err != nil && s.log != nil {
		s.log.WithFields(logrus.Fields{
			"opportunity_id": o.ID,
			"subject":        subject,
		}).WithError(err).Warn("activity event dropped")
	}
}
