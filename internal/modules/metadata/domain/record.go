package domain

import "time"

const SchemaVersion = 1

// ShieldRecord is the cross-process handoff object. The shield-producing
// intercept overwrites it each time a block screen is shown for a target;
// the action-receiving intercept and the host process only ever read it.
type ShieldRecord struct {
	TargetID     string    `json:"target_id"`
	DisplayName  string    `json:"display_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	IntentionID  string    `json:"intention_id,omitempty"`
	FromCategory bool      `json:"from_category"`
	CreatedAt    time.Time `json:"created_at"`
}

// FreshAt is the reader-side staleness policy. The store never expires
// entries; staleness is bounded by overwrite on the next shield, and readers
// treat anything older than the horizon as absent.
func (r ShieldRecord) FreshAt(now time.Time, horizon time.Duration) bool {
	if horizon <= 0 {
		return true
	}
	return now.Sub(r.CreatedAt) <= horizon
}
