package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salespipe/internal/currency"
	"salespipe/internal/models"
	"salespipe/internal/scope"
	"salespipe/internal/scoring"
	"salespipe/internal/stage"
)

const recentActivityLimit = 10

type UserDirectory interface {
	List() ([]models.UserProfile, error)
}

type SettingsStore interface {
	Get() (models.Settings, error)
}

type RateSource interface {
	ListActive() ([]models.ExchangeRate, error)
}

type ActivityFeed interface {
	ListRecentScoped(sc scope.Scope, limit int) ([]models.Activity, error)
}

type StageBucket struct {
	Stage   string  `json:"stage"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Summary struct {
	ScopeLabel           string            `json:"scope"`
	HomeCurrency         string            `json:"home_currency"`
	TotalCount           int               `json:"total_count"`
	TotalValueHome       decimal.Decimal   `json:"total_value_home"`
	WeightedPipelineHome decimal.Decimal   `json:"weighted_pipeline_home"`
	// Amounts that could not be converted to the home currency. Surfaced
	// instead of silently folded into the totals as wrong numbers.
	UnconvertedCount int               `json:"unconverted_count"`
	CountByStage     []StageBucket     `json:"count_by_stage"`
	RecentActivity   []models.Activity `json:"recent_activity"`
}

// Row is one export line: the record plus its derived display values.
type Row struct {
	Opportunity  *models.Opportunity   `json:"opportunity"`
	Score        int                   `json:"score"`
	Overdue      bool                  `json:"overdue"`
	Presentation currency.Presentation `json:"presentation"`
}

// DashboardService composes scope resolution, the stage machine's derived
// fields, performance scoring and currency conversion into the summaries the
// UI calls for. Stateless: every call re-derives from current records.
type DashboardService struct {
	opps     OpportunityStore
	users    UserDirectory
	settings SettingsStore
	rates    RateSource
	feed     ActivityFeed
	log      *logrus.Logger
	now      func() time.Time
}

func NewDashboardService(opps OpportunityStore, users UserDirectory, settings SettingsStore, rates RateSource, feed ActivityFeed, log *logrus.Logger) *DashboardService {
	return &DashboardService{opps: opps, users: users, settings: settings, rates: rates, feed: feed, log: log, now: time.Now}
}

// ResolveScope loads the population and settings and computes the
// requester's visibility scope. Handlers call this once per request and pass
// the result down.
func (s *DashboardService) ResolveScope(requester models.UserProfile) (scope.Scope, models.Settings, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return scope.Scope{}, models.Settings{}, err
	}
	users, err := s.users.List()
	if err != nil {
		return scope.Scope{}, models.Settings{}, err
	}
	return scope.Resolve(requester, users, settings), settings, nil
}

func (s *DashboardService) Summary(requester models.UserProfile) (*Summary, error) {
	sc, settings, err := s.ResolveScope(requester)
	if err != nil {
		return nil, err
	}

	opps, err := s.opps.ListScoped(sc, 10000, 0)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.ListActive()
	if err != nil {
		return nil, err
	}
	conv := currency.NewConverter(settings, rates)
	now := s.now()

	sum := &Summary{
		ScopeLabel:           sc.Label,
		HomeCurrency:         settings.HomeCurrency,
		TotalCount:           len(opps),
		TotalValueHome:       decimal.Zero,
		WeightedPipelineHome: decimal.Zero,
	}

	byStage := map[stage.Stage]int{}
	for _, o := range opps {
		byStage[o.Stage]++

		c, err := conv.Convert(o.Amount, o.Currency, settings.HomeCurrency, now)
		if err != nil {
			sum.UnconvertedCount++
			continue
		}
		sum.TotalValueHome = sum.TotalValueHome.Add(c.Amount)
		if o.Status == models.StatusOpen {
			weight := decimal.NewFromInt(int64(o.Stage.Probability())).Div(decimal.NewFromInt(100))
			sum.WeightedPipelineHome = sum.WeightedPipelineHome.Add(c.Amount.Mul(weight))
		}
	}

	for _, st := range stage.Ordered() {
		n := byStage[st]
		if n == 0 {
			continue
		}
		pct := 0.0
		if len(opps) > 0 {
			pct = float64(n) * 100 / float64(len(opps))
		}
		sum.CountByStage = append(sum.CountByStage, StageBucket{Stage: st.String(), Count: n, Percent: pct})
	}

	if s.feed != nil {
		acts, err := s.feed.ListRecentScoped(sc, recentActivityLimit)
		if err != nil {
			// the feed is decoration; the rollup is still valid without it
			if s.log != nil {
				s.log.WithError(err).Warn("recent activity unavailable")
			}
		} else {
			sum.RecentActivity = acts
		}
	}
	return sum, nil
}

// Rows produces the per-record export lines, sorted as fetched (newest
// activity first) with scores attached for client-side prioritization.
func (s *DashboardService) Rows(requester models.UserProfile) ([]Row, models.Settings, error) {
	sc, settings, err := s.ResolveScope(requester)
	if err != nil {
		return nil, models.Settings{}, err
	}
	opps, err := s.opps.ListScoped(sc, 10000, 0)
	if err != nil {
		return nil, models.Settings{}, err
	}
	rates, err := s.rates.ListActive()
	if err != nil {
		return nil, models.Settings{}, err
	}
	conv := currency.NewConverter(settings, rates)
	now := s.now()

	rows := make([]Row, 0, len(opps))
	for _, o := range opps {
		p, err := conv.PresentAmount(o.Amount, o.Currency, now)
		if err != nil {
			// ambiguous currency under dual mode: present the home leg as
			// unavailable rather than dropping the record
			p = currency.Presentation{Home: currency.Leg{Currency: settings.HomeCurrency, Unavailable: true}}
		}
		rows = append(rows, Row{
			Opportunity:  o,
			Score:        scoring.CumulativeScore(*o, now),
			Overdue:      o.Overdue(now),
			Presentation: p,
		})
	}
	return rows, settings, nil
}
