package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/models"
	"salespipe/internal/stage"
)

var testNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func newOpenOpportunity() *models.Opportunity {
	return &models.Opportunity{
		ID:             1,
		Name:           "Acme rollout",
		Amount:         decimal.NewFromInt(50000),
		Currency:       "USD",
		Stage:          stage.Prospecting,
		Status:         models.StatusOpen,
		Probability:    stage.Prospecting.Probability(),
		OwnerID:        7,
		CreatedAt:      testNow.AddDate(0, -1, 0),
		LastActivityAt: testNow.AddDate(0, -1, 0),
	}
}

func futureStep() models.NextStep {
	return models.NextStep{Title: "follow up", DueDate: testNow.AddDate(0, 0, 7)}
}

func TestAdvanceStoresEvidenceAndUpdatesProbability(t *testing.T) {
	o := newOpenOpportunity()
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	err := AdvanceStage(o, "need confirmed", models.NextStep{Title: "qualify budget", DueDate: due}, testNow)
	if err != nil {
		t.Fatalf("AdvanceStage: %v", err)
	}
	if o.Stage != stage.Qualification {
		t.Errorf("stage = %s, want Qualification", o.Stage)
	}
	if o.Probability != stage.Qualification.Probability() {
		t.Errorf("probability = %d, want %d", o.Probability, stage.Qualification.Probability())
	}
	if o.Evidence.Prospecting != "need confirmed" {
		t.Errorf("prospecting evidence slot = %q, want %q", o.Evidence.Prospecting, "need confirmed")
	}
	if o.NextStep == nil || !o.NextStep.DueDate.Equal(due) {
		t.Errorf("next step not replaced: %+v", o.NextStep)
	}
}

func TestAdvanceWalksEveryOpenStageOnce(t *testing.T) {
	o := newOpenOpportunity()
	visited := []stage.Stage{o.Stage}

	for i := 0; i < 4; i++ {
		if err := AdvanceStage(o, "evidence", futureStep(), testNow); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		for _, seen := range visited {
			if seen == o.Stage {
				t.Fatalf("stage %s revisited", o.Stage)
			}
		}
		visited = append(visited, o.Stage)
	}
	if o.Stage != stage.Negotiation {
		t.Fatalf("ended at %s, want Negotiation", o.Stage)
	}
	if len(visited) != len(stage.Open()) {
		t.Fatalf("visited %d stages, want %d", len(visited), len(stage.Open()))
	}

	// closing from Negotiation needs an explicit won/lost decision
	if err := AdvanceStage(o, "evidence", futureStep(), testNow); !errors.Is(err, stage.ErrIllegalTransition) {
		t.Fatalf("advance from Negotiation = %v, want ErrIllegalTransition", err)
	}
}

func TestAdvanceValidation(t *testing.T) {
	cases := []struct {
		name     string
		evidence string
		step     models.NextStep
	}{
		{"blank evidence", "   ", futureStep()},
		{"zero due date", "evidence", models.NextStep{Title: "x"}},
		{"past due date", "evidence", models.NextStep{Title: "x", DueDate: testNow.AddDate(0, 0, -2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOpenOpportunity()
			err := AdvanceStage(o, tc.evidence, tc.step, testNow)
			if !errors.Is(err, stage.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if o.Stage != stage.Prospecting {
				t.Errorf("validation failure mutated the record: stage = %s", o.Stage)
			}
		})
	}
}

func TestAdvanceOnTerminalIsNoOp(t *testing.T) {
	for _, terminal := range []stage.Stage{stage.ClosedWon, stage.ClosedLost} {
		o := newOpenOpportunity()
		o.Stage = terminal
		before := *o

		err := AdvanceStage(o, "evidence", futureStep(), testNow)
		if !errors.Is(err, stage.ErrAlreadyTerminal) {
			t.Fatalf("advance on %s = %v, want ErrAlreadyTerminal", terminal, err)
		}
		if *o != before {
			t.Errorf("no-op mutated the record on %s", terminal)
		}
	}
}

func TestMarkWonInvariant(t *testing.T) {
	o := newOpenOpportunity()
	o.Stage = stage.Discovery

	if err := MarkWon(o, testNow); err != nil {
		t.Fatalf("MarkWon: %v", err)
	}
	if o.Stage != stage.ClosedWon || o.Status != models.StatusWon || o.Probability != 100 {
		t.Errorf("won invariant broken: stage=%s status=%s probability=%d", o.Stage, o.Status, o.Probability)
	}
	if o.ClosedAt == nil || !o.ClosedAt.Equal(testNow) {
		t.Errorf("close timestamp not recorded: %v", o.ClosedAt)
	}

	// irreversible
	if err := MarkWon(o, testNow); !errors.Is(err, stage.ErrAlreadyTerminal) {
		t.Errorf("second MarkWon = %v, want ErrAlreadyTerminal", err)
	}
}

func TestMarkLostScenario(t *testing.T) {
	o := newOpenOpportunity()
	o.Stage = stage.Negotiation

	if err := MarkLost(o, "Budget constraints", "", testNow); err != nil {
		t.Fatalf("MarkLost: %v", err)
	}
	if o.Stage != stage.ClosedLost || o.Status != models.StatusLost || o.Probability != 0 {
		t.Errorf("lost invariant broken: stage=%s status=%s probability=%d", o.Stage, o.Status, o.Probability)
	}
	if o.LossReason != "Budget constraints" {
		t.Errorf("loss reason = %q", o.LossReason)
	}

	if err := AdvanceStage(o, "evidence", futureStep(), testNow); !errors.Is(err, stage.ErrAlreadyTerminal) {
		t.Errorf("advance after loss = %v, want ErrAlreadyTerminal", err)
	}
}

func TestMarkLostFallbackNote(t *testing.T) {
	o := newOpenOpportunity()
	if err := MarkLost(o, "Some unlisted reason", "champion left the company", testNow); err != nil {
		t.Fatalf("MarkLost with note: %v", err)
	}
	if o.LossReason != "champion left the company" {
		t.Errorf("loss reason = %q, want the free-text note", o.LossReason)
	}

	o2 := newOpenOpportunity()
	err := MarkLost(o2, "", "", testNow)
	if !errors.Is(err, stage.ErrValidation) {
		t.Fatalf("MarkLost without reason or note = %v, want ErrValidation", err)
	}
}
