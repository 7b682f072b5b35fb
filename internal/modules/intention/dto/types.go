package dto

import "time"

type IntentionOutput struct {
	ID       string
	Title    string
	Prompt   string
	Kind     string
	Duration time.Duration
}
