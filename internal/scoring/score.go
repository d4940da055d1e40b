// Package scoring derives a display-priority score for opportunities. The
// score never feeds transition eligibility; it only orders lists.
package scoring

import (
	"time"

	"salespipe/internal/models"
	"salespipe/internal/stage"
)

const (
	// Points credited for each stage already passed on the open path.
	pointsPerStage = 18

	// Expected time an opportunity spends in one stage before the score
	// starts to decay.
	expectedStageDuration = 14 * 24 * time.Hour

	// Decay per full day beyond the expected duration.
	decayPerDay = 1

	maxScore = 100
)

// CumulativeScore is a pure function of stage, createdAt and lastActivityAt.
// It grows with each stage passed and decays mildly once the record sits in
// its current stage longer than expected. Result is clamped to [0, maxScore].
// Closed Won pins to the maximum, Closed Lost to zero.
func CumulativeScore(o models.Opportunity, now time.Time) int {
	switch o.Stage {
	case stage.ClosedWon:
		return maxScore
	case stage.ClosedLost:
		return 0
	}

	score := (int(o.Stage) + 1) * pointsPerStage

	idle := now.Sub(o.LastActivityAt)
	if idle > expectedStageDuration {
		days := int((idle - expectedStageDuration) / (24 * time.Hour))
		score -= days * decayPerDay
	}

	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
