package service

import (
	"context"
	"fmt"

	"mindgate/internal/modules/schedule/domain"
	scheduleout "mindgate/internal/modules/schedule/port/out"
	apperrors "mindgate/internal/platform/errors"
	"mindgate/internal/platform/id"
)

type ScheduleService struct {
	idGen id.Generator
	store scheduleout.ScheduleStore
}

func NewScheduleService(idGen id.Generator, store scheduleout.ScheduleStore) *ScheduleService {
	return &ScheduleService{idGen: idGen, store: store}
}

func (s *ScheduleService) Add(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	if schedule.Name == "" {
		return domain.Schedule{}, fmt.Errorf("%w: schedule name is required", apperrors.ErrInvalidInput)
	}
	if len(schedule.Ranges) == 0 {
		return domain.Schedule{}, fmt.Errorf("%w: schedule needs at least one time range", apperrors.ErrInvalidInput)
	}
	for _, r := range schedule.Ranges {
		if !r.Valid() {
			return domain.Schedule{}, fmt.Errorf("%w: time range minutes must be within one day", apperrors.ErrInvalidInput)
		}
	}
	for _, d := range schedule.Days {
		if d < 1 || d > 7 {
			return domain.Schedule{}, fmt.Errorf("%w: day of week must be 1..7", apperrors.ErrInvalidInput)
		}
	}
	if len(schedule.Days) == 0 {
		return domain.Schedule{}, fmt.Errorf("%w: schedule needs at least one day", apperrors.ErrInvalidInput)
	}

	schedules, err := s.store.Load(ctx)
	if err != nil {
		return domain.Schedule{}, err
	}
	schedule.ID = s.idGen.New()
	schedule.Enabled = true
	schedules = append(schedules, schedule)
	if err := s.store.Save(ctx, schedules); err != nil {
		return domain.Schedule{}, err
	}
	return schedule, nil
}

func (s *ScheduleService) SetEnabled(ctx context.Context, scheduleID string, enabled bool) (domain.Schedule, error) {
	schedules, err := s.store.Load(ctx)
	if err != nil {
		return domain.Schedule{}, err
	}
	for i := range schedules {
		if schedules[i].ID != scheduleID {
			continue
		}
		schedules[i].Enabled = enabled
		if err := s.store.Save(ctx, schedules); err != nil {
			return domain.Schedule{}, err
		}
		return schedules[i], nil
	}
	return domain.Schedule{}, fmt.Errorf("schedule %s: %w", scheduleID, apperrors.ErrNotFound)
}

func (s *ScheduleService) Remove(ctx context.Context, scheduleID string) error {
	schedules, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	kept := schedules[:0]
	found := false
	for _, sched := range schedules {
		if sched.ID == scheduleID {
			found = true
			continue
		}
		kept = append(kept, sched)
	}
	if !found {
		return fmt.Errorf("schedule %s: %w", scheduleID, apperrors.ErrNotFound)
	}
	return s.store.Save(ctx, kept)
}

func (s *ScheduleService) List(ctx context.Context) ([]domain.Schedule, error) {
	return s.store.Load(ctx)
}
