package scoring

import (
	"testing"
	"time"

	"salespipe/internal/models"
	"salespipe/internal/stage"
)

var now = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

func opp(st stage.Stage, lastActivity time.Time) models.Opportunity {
	return models.Opportunity{
		Stage:          st,
		CreatedAt:      lastActivity.AddDate(0, -2, 0),
		LastActivityAt: lastActivity,
	}
}

func TestScoreDeterministic(t *testing.T) {
	o := opp(stage.Discovery, now.AddDate(0, 0, -30))
	a := CumulativeScore(o, now)
	b := CumulativeScore(o, now)
	if a != b {
		t.Fatalf("score not deterministic: %d vs %d", a, b)
	}
}

func TestScoreGrowsWithStage(t *testing.T) {
	fresh := now.AddDate(0, 0, -1)
	prev := -1
	for _, st := range stage.Open() {
		s := CumulativeScore(opp(st, fresh), now)
		if s <= prev {
			t.Errorf("score did not grow at %s: %d <= %d", st, s, prev)
		}
		prev = s
	}
}

func TestScoreDecaysWithIdleTime(t *testing.T) {
	active := CumulativeScore(opp(stage.Negotiation, now.AddDate(0, 0, -3)), now)
	stale := CumulativeScore(opp(stage.Negotiation, now.AddDate(0, 0, -40)), now)
	if stale >= active {
		t.Fatalf("idle record not decayed: stale=%d active=%d", stale, active)
	}
}

func TestScoreBounds(t *testing.T) {
	// years idle: decay must clamp at zero, not go negative
	ancient := CumulativeScore(opp(stage.Prospecting, now.AddDate(-3, 0, 0)), now)
	if ancient != 0 {
		t.Errorf("floor not applied: %d", ancient)
	}

	if got := CumulativeScore(opp(stage.ClosedWon, now.AddDate(-3, 0, 0)), now); got != 100 {
		t.Errorf("ClosedWon score = %d, want 100", got)
	}
	if got := CumulativeScore(opp(stage.ClosedLost, now), now); got != 0 {
		t.Errorf("ClosedLost score = %d, want 0", got)
	}

	for _, st := range stage.Open() {
		s := CumulativeScore(opp(st, now), now)
		if s < 0 || s > 100 {
			t.Errorf("score out of bounds at %s: %d", st, s)
		}
	}
}
