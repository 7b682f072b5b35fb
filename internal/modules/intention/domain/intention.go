package domain

import "time"

type Kind string

const (
	KindBreathing  Kind = "breathing"
	KindReflection Kind = "reflection"
	KindGratitude  Kind = "gratitude"
)

// Intention is one short guided exercise offered as the condition for
// continuing into a restricted target.
type Intention struct {
	ID       string
	Title    string
	Prompt   string
	Kind     Kind
	Duration time.Duration
}
