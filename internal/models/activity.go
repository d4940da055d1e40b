package models

import "time"

// Activity is both the write-only lifecycle event sink and the source of the
// dashboard's recent-activity feed.
type Activity struct {
	ID            int       `json:"id"`
	Subject       string    `json:"subject"`
	Description   string    `json:"description"`
	OpportunityID int       `json:"opportunity_id"`
	OwnerID       int       `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
}
