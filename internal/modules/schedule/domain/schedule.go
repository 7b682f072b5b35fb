package domain

import "time"

const SchemaVersion = 1

const minutesPerDay = 24 * 60

// TimeRange is a day-relative window in minutes since midnight. Start past
// End wraps midnight and is evaluated as [Start, 24:00) ∪ [0:00, End].
type TimeRange struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

func (r TimeRange) Wraps() bool {
	return r.StartMinute > r.EndMinute
}

func (r TimeRange) Valid() bool {
	return r.StartMinute >= 0 && r.StartMinute < minutesPerDay &&
		r.EndMinute >= 0 && r.EndMinute < minutesPerDay
}

// Schedule is a named recurring restriction window. Days use ISO numbering,
// 1=Monday through 7=Sunday.
type Schedule struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Enabled    bool        `json:"enabled"`
	Ranges     []TimeRange `json:"time_ranges"`
	Days       []int       `json:"days_of_week"`
	ValidFrom  *time.Time  `json:"valid_from,omitempty"`
	ValidUntil *time.Time  `json:"valid_until,omitempty"`
}

// Window is the single monitoring envelope covering every enabled schedule.
// It is derived, never persisted.
type Window struct {
	Start     time.Time
	End       time.Time
	Recurring bool
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (s Schedule) onDay(day int) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ActiveAt reports whether the schedule restricts at the given instant.
// Ranges are a union: any match activates the schedule. A wrapping range
// matches its tail against the previous day's weekday, since that window
// started the evening before.
func (s Schedule) ActiveAt(now time.Time) bool {
	if !s.Enabled {
		return false
	}
	if s.ValidFrom != nil && now.Before(*s.ValidFrom) {
		return false
	}
	if s.ValidUntil != nil && now.After(*s.ValidUntil) {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	today := isoWeekday(now)
	yesterday := isoWeekday(now.AddDate(0, 0, -1))
	for _, r := range s.Ranges {
		if !r.Valid() {
			continue
		}
		if r.Wraps() {
			if s.onDay(today) && minute >= r.StartMinute {
				return true
			}
			if s.onDay(yesterday) && minute <= r.EndMinute {
				return true
			}
			continue
		}
		if s.onDay(today) && minute >= r.StartMinute && minute <= r.EndMinute {
			return true
		}
	}
	return false
}

// IsAnyActive is a boolean OR across schedules; overlap has no special
// handling.
func IsAnyActive(schedules []Schedule, now time.Time) bool {
	for _, s := range schedules {
		if s.ActiveAt(now) {
			return true
		}
	}
	return false
}

// CombinedWindow reduces the enabled schedules to the one envelope the
// enforcement capability needs to observe. ok is false when no schedule is
// enabled; the caller must stop observation rather than install a window
// with default bounds.
func CombinedWindow(schedules []Schedule, now time.Time) (Window, bool) {
	enabled := make([]Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	if len(enabled) == 0 {
		return Window{}, false
	}

	window := Window{Start: now, End: now}
	unbounded := false
	for _, s := range enabled {
		if s.ValidFrom != nil && s.ValidFrom.Before(window.Start) {
			window.Start = *s.ValidFrom
		}
		if s.ValidUntil == nil {
			unbounded = true
		} else if s.ValidUntil.After(window.End) {
			window.End = *s.ValidUntil
		}
		if len(s.Ranges) > 0 {
			window.Recurring = true
		}
	}
	if unbounded {
		if horizon := now.AddDate(1, 0, 0); horizon.After(window.End) {
			window.End = horizon
		}
	}
	return window, true
}
