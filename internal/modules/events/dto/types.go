package dto

import "time"

type EventOutput struct {
	Kind        string    `json:"kind"`
	TargetID    string    `json:"target_id,omitempty"`
	IntentionID string    `json:"intention_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	At          time.Time `json:"at"`
}
