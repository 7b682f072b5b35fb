package dto

import "time"

type StartInput struct {
	IntentionID  string
	TargetID     string
	FromCategory bool
}

type SessionOutput struct {
	State        string        `json:"state"`
	IntentionID  string        `json:"intention_id,omitempty"`
	TargetID     string        `json:"target_id,omitempty"`
	DisplayName  string        `json:"display_name,omitempty"`
	FromCategory bool          `json:"from_category,omitempty"`
	Elapsed      time.Duration `json:"elapsed"`
	Total        time.Duration `json:"total"`
	Progress     float64       `json:"progress"`
}
