package models

import (
	"time"

	"github.com/shopspring/decimal"

	"salespipe/internal/stage"
)

const (
	StatusOpen      = "open"
	StatusWon       = "won"
	StatusLost      = "lost"
	StatusCancelled = "cancelled"
)

// EvidenceBundle holds the free-text justification captured when an
// opportunity leaves a stage. A slot is populated only once the stage has
// actually been passed.
type EvidenceBundle struct {
	Prospecting   string `json:"prospecting,omitempty"`
	Qualification string `json:"qualification,omitempty"`
	Discovery     string `json:"discovery,omitempty"`
}

type NextStep struct {
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

type Opportunity struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Stage          stage.Stage     `json:"stage"`
	// StageFlagged is set when the stored stage label could not be
	// recognized and fell back to Prospecting; kept for manual correction.
	StageFlagged   bool            `json:"stage_flagged,omitempty"`
	Status         string          `json:"status"`
	Probability    int             `json:"probability"`
	OwnerID        int             `json:"owner_id"`
	Evidence       EvidenceBundle  `json:"evidence"`
	NextStep       *NextStep       `json:"next_step,omitempty"`
	LossReason     string          `json:"loss_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	LastActivityAt time.Time       `json:"last_activity_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
}

// Overdue reports whether the next step's due date has passed without the
// opportunity being closed.
func (o *Opportunity) Overdue(now time.Time) bool {
	if o.Stage.IsTerminal() || o.NextStep == nil {
		return false
	}
	return o.NextStep.DueDate.Before(now)
}
