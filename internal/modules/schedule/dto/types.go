package dto

import "time"

type RangeInput struct {
	StartMinute int
	EndMinute   int
}

type AddInput struct {
	Name       string
	Ranges     []RangeInput
	Days       []int
	ValidFrom  *time.Time
	ValidUntil *time.Time
}

type ScheduleOutput struct {
	ID         string
	Name       string
	Enabled    bool
	Ranges     []RangeInput
	Days       []int
	ValidFrom  *time.Time
	ValidUntil *time.Time
	ActiveNow  bool
}

type StatusOutput struct {
	AnyActive  bool
	Monitoring bool
	Window     *WindowOutput
}

type WindowOutput struct {
	Start     time.Time
	End       time.Time
	Recurring bool
}
