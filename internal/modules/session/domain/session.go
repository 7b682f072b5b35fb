package domain

import (
	"fmt"
	"time"

	apperrors "mindgate/internal/platform/errors"
)

type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
	StateSkipped   State = "skipped"
)

func (s State) Terminal() bool {
	return s == StateCompleted || s == StateSkipped
}

// Session is one intention exercise in progress. It lives in host-process
// memory only; progress does not survive a daemon restart.
type Session struct {
	IntentionID  string
	TargetID     string
	DisplayName  string
	FromCategory bool
	StartedAt    time.Time
	Elapsed      time.Duration
	Total        time.Duration
	State        State
}

func New(intentionID, targetID string, total time.Duration, startedAt time.Time) *Session {
	return &Session{
		IntentionID: intentionID,
		TargetID:    targetID,
		StartedAt:   startedAt,
		Total:       total,
		State:       StateActive,
	}
}

// Tick accumulates elapsed time while the session is active and caps at the
// total. Reaching the total never completes the session; completion is an
// explicit user transition.
func (s *Session) Tick(delta time.Duration) {
	if s.State != StateActive || delta <= 0 {
		return
	}
	s.Elapsed += delta
	if s.Elapsed > s.Total {
		s.Elapsed = s.Total
	}
}

// Progress reports elapsed over total, clamped to [0, 1].
func (s *Session) Progress() float64 {
	if s.Total <= 0 {
		return 1
	}
	p := float64(s.Elapsed) / float64(s.Total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (s *Session) Pause() error {
	if s.State != StateActive {
		return fmt.Errorf("%w: cannot pause a %s session", apperrors.ErrInvalidInput, s.State)
	}
	s.State = StatePaused
	return nil
}

func (s *Session) Resume() error {
	if s.State != StatePaused {
		return fmt.Errorf("%w: cannot resume a %s session", apperrors.ErrInvalidInput, s.State)
	}
	s.State = StateActive
	return nil
}

// Complete finishes the exercise. Early completion is allowed; the timer is
// a guide, not a gate.
func (s *Session) Complete() error {
	if s.State != StateActive && s.State != StatePaused {
		return fmt.Errorf("%w: cannot complete a %s session", apperrors.ErrInvalidInput, s.State)
	}
	s.State = StateCompleted
	return nil
}

// Skip abandons the exercise from any non-terminal state. Skipping an
// already terminal session is a no-op, never an error.
func (s *Session) Skip() {
	if s.State.Terminal() {
		return
	}
	s.State = StateSkipped
}
