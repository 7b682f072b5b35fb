package usecase

import (
	"context"
	"time"

	"mindgate/internal/modules/schedule/domain"
	"mindgate/internal/modules/schedule/dto"
	schedulein "mindgate/internal/modules/schedule/port/in"
	"mindgate/internal/modules/schedule/service"
)

type Interactor struct {
	svc *service.ScheduleService
}

func NewInteractor(svc *service.ScheduleService) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.ScheduleOutput, error) {
	ranges := make([]domain.TimeRange, 0, len(input.Ranges))
	for _, r := range input.Ranges {
		ranges = append(ranges, domain.TimeRange{StartMinute: r.StartMinute, EndMinute: r.EndMinute})
	}
	schedule, err := i.svc.Add(ctx, domain.Schedule{
		Name:       input.Name,
		Ranges:     ranges,
		Days:       input.Days,
		ValidFrom:  input.ValidFrom,
		ValidUntil: input.ValidUntil,
	})
	if err != nil {
		return dto.ScheduleOutput{}, err
	}
	return toOutput(schedule, time.Time{}), nil
}

func (i *Interactor) SetEnabled(ctx context.Context, scheduleID string, enabled bool) (dto.ScheduleOutput, error) {
	schedule, err := i.svc.SetEnabled(ctx, scheduleID, enabled)
	if err != nil {
		return dto.ScheduleOutput{}, err
	}
	return toOutput(schedule, time.Time{}), nil
}

func (i *Interactor) Remove(ctx context.Context, scheduleID string) error {
	return i.svc.Remove(ctx, scheduleID)
}

func (i *Interactor) List(ctx context.Context) ([]dto.ScheduleOutput, error) {
	schedules, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ScheduleOutput, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, toOutput(s, now))
	}
	return out, nil
}

func (i *Interactor) Status(ctx context.Context, now time.Time) (dto.StatusOutput, error) {
	schedules, err := i.svc.List(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	status := dto.StatusOutput{AnyActive: domain.IsAnyActive(schedules, now)}
	window, ok := domain.CombinedWindow(schedules, now)
	if ok {
		status.Monitoring = true
		status.Window = &dto.WindowOutput{Start: window.Start, End: window.End, Recurring: window.Recurring}
	}
	return status, nil
}

func toOutput(s domain.Schedule, now time.Time) dto.ScheduleOutput {
	ranges := make([]dto.RangeInput, 0, len(s.Ranges))
	for _, r := range s.Ranges {
		ranges = append(ranges, dto.RangeInput{StartMinute: r.StartMinute, EndMinute: r.EndMinute})
	}
	out := dto.ScheduleOutput{
		ID:         s.ID,
		Name:       s.Name,
		Enabled:    s.Enabled,
		Ranges:     ranges,
		Days:       s.Days,
		ValidFrom:  s.ValidFrom,
		ValidUntil: s.ValidUntil,
	}
	if !now.IsZero() {
		out.ActiveNow = s.ActiveAt(now)
	}
	return out
}
