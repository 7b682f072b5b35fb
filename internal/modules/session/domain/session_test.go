package domain_test

import (
	"testing"
	"time"

	"mindgate/internal/modules/session/domain"
)

func newSession() *domain.Session {
	return domain.New("breathe", "app-abc", 60*time.Second, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))
}

func TestTickAccumulatesAndCapsWithoutCompleting(t *testing.T) {
	t.Parallel()
	s := newSession()

	for i := 0; i < 60; i++ {
		s.Tick(time.Second)
	}
	if got := s.Progress(); got != 1 {
		t.Fatalf("sixty one-second ticks on a sixty-second session: progress %v", got)
	}
	if s.State != domain.StateActive {
		t.Fatalf("reaching the total must not complete the session, state %s", s.State)
	}

	s.Tick(time.Second)
	if s.Elapsed != 60*time.Second {
		t.Fatalf("elapsed must cap at total, got %v", s.Elapsed)
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	t.Parallel()
	s := newSession()
	s.Tick(10 * time.Second)
	if err := s.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}

	s.Tick(30 * time.Second)
	if s.Elapsed != 10*time.Second {
		t.Fatalf("paused sessions must not accumulate, got %v", s.Elapsed)
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	s.Tick(time.Second)
	if s.Elapsed != 11*time.Second {
		t.Fatalf("resumed session must accumulate again, got %v", s.Elapsed)
	}
}

func TestEarlyCompletion(t *testing.T) {
	t.Parallel()
	s := newSession()
	s.Tick(5 * time.Second)

	if err := s.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if s.State != domain.StateCompleted {
		t.Fatalf("state %s", s.State)
	}
	if s.Progress() >= 1 {
		t.Fatalf("early completion keeps partial progress, got %v", s.Progress())
	}
}

func TestCompleteFromPaused(t *testing.T) {
	t.Parallel()
	s := newSession()
	if err := s.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := s.Complete(); err != nil {
		t.Fatalf("complete from paused: %v", err)
	}
}

func TestCompleteFromTerminalFails(t *testing.T) {
	t.Parallel()
	s := newSession()
	s.Skip()
	if err := s.Complete(); err == nil {
		t.Fatal("completing a skipped session must fail")
	}
}

func TestSkipIsIdempotent(t *testing.T) {
	t.Parallel()
	s := newSession()
	s.Skip()
	if s.State != domain.StateSkipped {
		t.Fatalf("state %s", s.State)
	}
	s.Skip()
	if s.State != domain.StateSkipped {
		t.Fatalf("second skip must be a no-op, state %s", s.State)
	}

	done := newSession()
	if err := done.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	done.Skip()
	if done.State != domain.StateCompleted {
		t.Fatalf("skip must not demote a completed session, state %s", done.State)
	}
}

func TestProgressClamps(t *testing.T) {
	t.Parallel()
	zero := domain.New("breathe", "app-abc", 0, time.Now())
	if zero.Progress() != 1 {
		t.Fatalf("zero-length sessions read as done, got %v", zero.Progress())
	}
}
