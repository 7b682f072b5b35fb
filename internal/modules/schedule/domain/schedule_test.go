package domain_test

import (
	"testing"
	"time"

	"mindgate/internal/modules/schedule/domain"
)

func allDays() []int { return []int{1, 2, 3, 4, 5, 6, 7} }

func nightly() domain.Schedule {
	return domain.Schedule{
		ID:      "night",
		Name:    "Nightly",
		Enabled: true,
		Ranges:  []domain.TimeRange{{StartMinute: 22 * 60, EndMinute: 6 * 60}},
		Days:    allDays(),
	}
}

func at(hour, minute int) time.Time {
	// 2026-03-04 is a Wednesday.
	return time.Date(2026, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestMidnightWrapActivity(t *testing.T) {
	t.Parallel()
	s := nightly()
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before midnight", at(23, 30), true},
		{"after midnight", at(5, 30), true},
		{"midday", at(12, 0), false},
		{"at range start", at(22, 0), true},
		{"at range end", at(6, 0), true},
		{"just past range end", at(6, 1), false},
	}
	for _, tc := range cases {
		if got := s.ActiveAt(tc.now); got != tc.want {
			t.Fatalf("%s: ActiveAt(%v) = %v, want %v", tc.name, tc.now, got, tc.want)
		}
	}
}

func TestWrapTailMatchesPreviousDay(t *testing.T) {
	t.Parallel()
	s := nightly()
	s.Days = []int{2} // Tuesday evenings only
	// Wednesday 05:30 belongs to Tuesday's window tail.
	if !s.ActiveAt(at(5, 30)) {
		t.Fatal("tail of Tuesday's wrap window must be active on Wednesday morning")
	}
	// Wednesday 23:30 is Wednesday's own evening, not scheduled.
	if s.ActiveAt(at(23, 30)) {
		t.Fatal("Wednesday evening must be inactive for a Tuesday-only schedule")
	}
}

func TestDisabledAndBoundsGateActivity(t *testing.T) {
	t.Parallel()
	s := nightly()
	s.Enabled = false
	if s.ActiveAt(at(23, 30)) {
		t.Fatal("disabled schedule must never be active")
	}

	s = nightly()
	from := at(23, 45)
	s.ValidFrom = &from
	if s.ActiveAt(at(23, 30)) {
		t.Fatal("schedule must be inactive before valid_from")
	}
	if !s.ActiveAt(at(23, 50)) {
		t.Fatal("schedule must be active after valid_from")
	}

	s = nightly()
	until := at(23, 0)
	s.ValidUntil = &until
	if s.ActiveAt(at(23, 30)) {
		t.Fatal("schedule must be inactive after valid_until")
	}
}

func TestRangesAreAUnion(t *testing.T) {
	t.Parallel()
	s := domain.Schedule{
		ID:      "split",
		Enabled: true,
		Days:    allDays(),
		Ranges: []domain.TimeRange{
			{StartMinute: 9 * 60, EndMinute: 10 * 60},
			{StartMinute: 14 * 60, EndMinute: 15 * 60},
		},
	}
	if !s.ActiveAt(at(9, 30)) || !s.ActiveAt(at(14, 30)) {
		t.Fatal("any matching range must activate the schedule")
	}
	if s.ActiveAt(at(12, 0)) {
		t.Fatal("gap between ranges must be inactive")
	}
}

func TestIsAnyActiveIsBooleanOr(t *testing.T) {
	t.Parallel()
	off := nightly()
	off.Enabled = false
	day := domain.Schedule{
		ID:      "work",
		Enabled: true,
		Days:    []int{3},
		Ranges:  []domain.TimeRange{{StartMinute: 9 * 60, EndMinute: 17 * 60}},
	}
	schedules := []domain.Schedule{off, day}
	if !domain.IsAnyActive(schedules, at(12, 0)) {
		t.Fatal("one active schedule must make the set active")
	}
	if domain.IsAnyActive(schedules, at(20, 0)) {
		t.Fatal("no schedule active at 20:00")
	}
}

func TestCombinedWindowEnvelope(t *testing.T) {
	t.Parallel()
	now := at(12, 0)

	if _, ok := domain.CombinedWindow(nil, now); ok {
		t.Fatal("empty set must signal no monitoring needed")
	}
	disabled := nightly()
	disabled.Enabled = false
	if _, ok := domain.CombinedWindow([]domain.Schedule{disabled}, now); ok {
		t.Fatal("all-disabled set must signal no monitoring needed")
	}

	unbounded := nightly()
	window, ok := domain.CombinedWindow([]domain.Schedule{unbounded}, now)
	if !ok {
		t.Fatal("enabled schedule must produce a window")
	}
	if window.Start.After(now) || window.End.Before(now) {
		t.Fatalf("window must envelope now: %v..%v", window.Start, window.End)
	}
	if !window.End.Equal(now.AddDate(1, 0, 0)) {
		t.Fatalf("unbounded schedule must extend one year out, got %v", window.End)
	}
	if !window.Recurring {
		t.Fatal("schedule with time ranges must mark the window recurring")
	}

	from := now.AddDate(0, -1, 0)
	until := now.AddDate(0, 2, 0)
	bounded := nightly()
	bounded.ValidFrom = &from
	bounded.ValidUntil = &until
	window, ok = domain.CombinedWindow([]domain.Schedule{bounded}, now)
	if !ok {
		t.Fatal("bounded schedule must produce a window")
	}
	if !window.Start.Equal(from) || !window.End.Equal(until) {
		t.Fatalf("bounded window mismatch: %v..%v", window.Start, window.End)
	}

	// Envelope must cover both when mixed.
	window, _ = domain.CombinedWindow([]domain.Schedule{bounded, unbounded}, now)
	if !window.Start.Equal(from) {
		t.Fatalf("mixed window start must honor earliest valid_from, got %v", window.Start)
	}
	if !window.End.Equal(now.AddDate(1, 0, 0)) {
		t.Fatalf("mixed window end must honor the open bound, got %v", window.End)
	}
}
