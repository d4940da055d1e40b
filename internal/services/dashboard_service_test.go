package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salespipe/internal/authz"
	"salespipe/internal/models"
	"salespipe/internal/scope"
	"salespipe/internal/stage"
)

type fakeUsers struct{ users []models.UserProfile }

func (f *fakeUsers) List() ([]models.UserProfile, error) { return f.users, nil }

type fakeSettings struct{ s models.Settings }

func (f *fakeSettings) Get() (models.Settings, error) { return f.s, nil }

type fakeRates struct{ rates []models.ExchangeRate }

func (f *fakeRates) ListActive() ([]models.ExchangeRate, error) { return f.rates, nil }

type fakeFeed struct {
	acts []models.Activity
	err  error
}

func (f *fakeFeed) ListRecentScoped(sc scope.Scope, limit int) ([]models.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.acts) {
		return f.acts[:limit], nil
	}
	return f.acts, nil
}

func intp(v int) *int { return &v }

// Fixture: a manager over department 5. Owner 7 reports to them, owner 9 is
// in another department and must never leak into the rollup.
func dashboardFixture(t *testing.T) (*DashboardService, *fakeStore, models.UserProfile) {
	t.Helper()

	requester := models.UserProfile{ID: 2, Role: authz.RoleManager, DepartmentID: intp(5)}
	users := &fakeUsers{users: []models.UserProfile{
		requester,
		{ID: 7, Role: authz.RoleAccountManager, DepartmentID: intp(5)},
		{ID: 9, Role: authz.RoleAccountManager, DepartmentID: intp(6)},
	}}
	settings := &fakeSettings{s: models.Settings{
		EntityMode:   models.EntityModeSingle,
		CurrencyMode: models.CurrencyModeSingle,
		HomeCurrency: "USD",
	}}
	rates := &fakeRates{rates: []models.ExchangeRate{{
		ID:            1,
		FromCurrency:  "IDR",
		ToCurrency:    "USD",
		Rate:          decimal.RequireFromString("0.0001"),
		EffectiveDate: testNow.AddDate(0, 0, -3),
		IsActive:      true,
	}}}

	inScope := func(id int, owner int, amount, cur string, st stage.Stage, status string) *models.Opportunity {
		return &models.Opportunity{
			ID:             id,
			Name:           "deal",
			Amount:         decimal.RequireFromString(amount),
			Currency:       cur,
			Stage:          st,
			Status:         status,
			Probability:    st.Probability(),
			OwnerID:        owner,
			CreatedAt:      testNow.AddDate(0, 0, -20),
			LastActivityAt: testNow.AddDate(0, 0, -1),
		}
	}
	lagging := inScope(1, 7, "1000", "USD", stage.Qualification, models.StatusOpen)
	lagging.NextStep = &models.NextStep{Title: "send proposal", DueDate: testNow.AddDate(0, 0, -2)}
	store := newFakeStore(
		lagging,
		inScope(2, 7, "650000", "IDR", stage.ClosedWon, models.StatusWon),
		inScope(3, 7, "500", "EUR", stage.Prospecting, models.StatusOpen),
		inScope(4, 9, "9999", "USD", stage.Negotiation, models.StatusOpen),
	)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewDashboardService(store, users, settings, rates, &fakeFeed{acts: []models.Activity{{ID: 1, Subject: "Stage advanced"}}}, log)
	svc.now = func() time.Time { return testNow }
	return svc, store, requester
}

func TestSummaryRollup(t *testing.T) {
	svc, _, requester := dashboardFixture(t)

	sum, err := svc.Summary(requester)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.ScopeLabel != "team" {
		t.Errorf("scope = %q, want team", sum.ScopeLabel)
	}
	if sum.TotalCount != 3 {
		t.Fatalf("total count = %d, want 3 (department 6 must be invisible)", sum.TotalCount)
	}
	// USD 1000 plus IDR 650000 at 0.0001; the EUR record has no rate.
	if want := decimal.NewFromInt(1065); !sum.TotalValueHome.Equal(want) {
		t.Errorf("total value = %s, want %s", sum.TotalValueHome, want)
	}
	// Only the open USD record weighs in: 1000 at Qualification's 25%.
	if want := decimal.NewFromInt(250); !sum.WeightedPipelineHome.Equal(want) {
		t.Errorf("weighted pipeline = %s, want %s", sum.WeightedPipelineHome, want)
	}
	if sum.UnconvertedCount != 1 {
		t.Errorf("unconverted = %d, want 1", sum.UnconvertedCount)
	}

	buckets := map[string]StageBucket{}
	for _, b := range sum.CountByStage {
		buckets[b.Stage] = b
	}
	for _, label := range []string{"Prospecting", "Qualification", "Closed Won"} {
		b, ok := buckets[label]
		if !ok || b.Count != 1 {
			t.Errorf("bucket %q = %+v, want count 1", label, b)
		}
	}
	if _, ok := buckets["Negotiation"]; ok {
		t.Error("out-of-scope record produced a stage bucket")
	}
	if len(sum.RecentActivity) != 1 {
		t.Errorf("recent activity = %d entries, want 1", len(sum.RecentActivity))
	}
}

func TestSummarySurvivesFeedFailure(t *testing.T) {
	svc, _, requester := dashboardFixture(t)
	svc.feed = &fakeFeed{err: errors.New("feed down")}

	sum, err := svc.Summary(requester)
	if err != nil {
		t.Fatalf("a dead activity feed must not fail the rollup: %v", err)
	}
	if len(sum.RecentActivity) != 0 {
		t.Errorf("recent activity = %+v, want empty", sum.RecentActivity)
	}
}

func TestRowsAttachScoreAndPresentation(t *testing.T) {
	svc, _, requester := dashboardFixture(t)

	rows, settings, err := svc.Rows(requester)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if settings.HomeCurrency != "USD" {
		t.Fatalf("settings not threaded through: %+v", settings)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	byID := map[int]Row{}
	for _, r := range rows {
		byID[r.Opportunity.ID] = r
	}

	won := byID[2]
	if won.Score != 100 {
		t.Errorf("won record score = %d, want 100", won.Score)
	}
	if won.Presentation.Home.Unavailable || !won.Presentation.Home.Amount.Equal(decimal.NewFromInt(65)) {
		t.Errorf("won record home leg = %+v, want 65 USD", won.Presentation.Home)
	}
	if won.Presentation.Home.Rate == nil || won.Presentation.Home.RateDate == nil {
		t.Error("converted leg must carry the rate and its date")
	}

	eur := byID[3]
	if !eur.Presentation.Home.Unavailable {
		t.Errorf("rate-less record must be marked unavailable: %+v", eur.Presentation.Home)
	}
	if eur.Score <= 0 {
		t.Errorf("open record score = %d, want positive", eur.Score)
	}

	if byID[1].Presentation.Local != nil {
		t.Error("single currency mode must not emit a local leg")
	}
	if !byID[1].Overdue {
		t.Error("past-due next step must mark the row overdue")
	}
	if won.Overdue {
		t.Error("closed record can never be overdue")
	}
}
