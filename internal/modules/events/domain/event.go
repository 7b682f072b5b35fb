package domain

import "time"

type Kind string

const (
	KindShieldPresented  Kind = "shield_presented"
	KindShieldClosed     Kind = "shield_closed"
	KindShieldDismissed  Kind = "shield_dismissed"
	KindNotifyFailed     Kind = "notify_failed"
	KindSessionStarted   Kind = "session_started"
	KindSessionCompleted Kind = "session_completed"
	KindSessionSkipped   Kind = "session_skipped"
)

// Event is one row in the local activity ledger. The dispatcher and the
// session machine append; nothing in the core ever mutates or deletes.
type Event struct {
	Kind        Kind
	TargetID    string
	IntentionID string
	Detail      string
	At          time.Time
}
