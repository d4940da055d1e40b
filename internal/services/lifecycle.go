package services

import (
	"strings"
	"time"

	"salespipe/internal/models"
	"salespipe/internal/stage"
)

// Configured loss reasons. A free-text note is the fallback for anything not
// on the list.
var LossReasons = []string{
	"Budget constraints",
	"Lost to competitor",
	"No decision",
	"Timing",
	"Requirements not met",
}

func knownLossReason(reason string) bool {
	for _, r := range LossReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// AdvanceStage moves the opportunity exactly one stage forward. Evidence is
// stored into the slot of the stage being left, probability is refreshed from
// the table, and the next step is replaced. Pure: the single persistence
// write belongs to the caller.
func AdvanceStage(o *models.Opportunity, evidence string, next models.NextStep, now time.Time) error {
	if o.Stage.IsTerminal() {
		return stage.ErrAlreadyTerminal
	}
	if strings.TrimSpace(evidence) == "" {
		return &stage.ValidationError{Field: "evidence", Reason: "required when leaving a stage"}
	}
	if next.DueDate.IsZero() {
		return &stage.ValidationError{Field: "next_step.due_date", Reason: "required"}
	}
	if next.DueDate.Before(now.Truncate(24 * time.Hour)) {
		return &stage.ValidationError{Field: "next_step.due_date", Reason: "must not be in the past"}
	}
	to, ok := o.Stage.Next()
	if !ok {
		// Negotiation closes through markWon/markLost, never by advancing.
		return stage.ErrIllegalTransition
	}

	switch o.Stage {
	case stage.Prospecting:
		o.Evidence.Prospecting = evidence
	case stage.Qualification:
		o.Evidence.Qualification = evidence
	case stage.Discovery:
		o.Evidence.Discovery = evidence
	}

	o.Stage = to
	o.StageFlagged = false
	o.Probability = to.Probability()
	o.NextStep = &models.NextStep{Title: next.Title, DueDate: next.DueDate}
	o.LastActivityAt = now
	return nil
}

// MarkWon closes the opportunity as won. Legal from any non-terminal stage;
// irreversible.
func MarkWon(o *models.Opportunity, now time.Time) error {
	if o.Stage.IsTerminal() {
		return stage.ErrAlreadyTerminal
	}
	o.Stage = stage.ClosedWon
	o.StageFlagged = false
	o.Status = models.StatusWon
	o.Probability = stage.ClosedWon.Probability()
	o.NextStep = nil
	o.LastActivityAt = now
	closed := now
	o.ClosedAt = &closed
	return nil
}

// MarkLost closes the opportunity as lost. Requires a reason from the
// configured list, or a non-blank note which then becomes the recorded
// reason.
func MarkLost(o *models.Opportunity, reason, note string, now time.Time) error {
	if o.Stage.IsTerminal() {
		return stage.ErrAlreadyTerminal
	}
	reason = strings.TrimSpace(reason)
	note = strings.TrimSpace(note)
	if !knownLossReason(reason) {
		if note == "" {
			return &stage.ValidationError{Field: "reason", Reason: "pick a listed reason or provide a note"}
		}
		reason = note
	}
	o.Stage = stage.ClosedLost
	o.StageFlagged = false
	o.Status = models.StatusLost
	o.Probability = stage.ClosedLost.Probability()
	o.NextStep = nil
	o.LossReason = reason
	o.LastActivityAt = now
	closed := now
	o.ClosedAt = &closed
	return nil
}
