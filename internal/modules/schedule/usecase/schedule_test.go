package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	scheduleout "mindgate/internal/modules/schedule/adapter/out"
	"mindgate/internal/modules/schedule/dto"
	"mindgate/internal/modules/schedule/service"
	"mindgate/internal/modules/schedule/usecase"
	apperrors "mindgate/internal/platform/errors"
)

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return []string{"sched-1", "sched-2", "sched-3"}[s.n-1]
}

func newUsecase(t *testing.T) (usecaseUnderTest, string) {
	t.Helper()
	state := t.TempDir()
	svc := service.NewScheduleService(&seqID{}, scheduleout.NewFileScheduleStore(state))
	return usecase.NewInteractor(svc), state
}

type usecaseUnderTest interface {
	Add(ctx context.Context, input dto.AddInput) (dto.ScheduleOutput, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (dto.ScheduleOutput, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]dto.ScheduleOutput, error)
	Status(ctx context.Context, now time.Time) (dto.StatusOutput, error)
}

func nightlyInput() dto.AddInput {
	return dto.AddInput{
		Name:   "Evenings",
		Ranges: []dto.RangeInput{{StartMinute: 22 * 60, EndMinute: 6 * 60}},
		Days:   []int{1, 2, 3, 4, 5, 6, 7},
	}
}

func TestAddValidatesAndPersistsInOrder(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)

	if _, err := uc.Add(context.Background(), dto.AddInput{Name: "", Ranges: []dto.RangeInput{{}}, Days: []int{1}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty name, got %v", err)
	}
	if _, err := uc.Add(context.Background(), dto.AddInput{Name: "x", Ranges: []dto.RangeInput{{StartMinute: 0, EndMinute: 60}}, Days: []int{8}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for day 8, got %v", err)
	}

	first, err := uc.Add(context.Background(), nightlyInput())
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if !first.Enabled {
		t.Fatal("new schedules start enabled")
	}
	in := nightlyInput()
	in.Name = "Mornings"
	if _, err := uc.Add(context.Background(), in); err != nil {
		t.Fatalf("add second: %v", err)
	}

	listed, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "Evenings" || listed[1].Name != "Mornings" {
		t.Fatalf("expected insertion order preserved, got %+v", listed)
	}
}

func TestStatusReflectsEnabledSet(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	// Wednesday 23:30.
	lateNight := time.Date(2026, 3, 4, 23, 30, 0, 0, time.UTC)

	status, err := uc.Status(context.Background(), lateNight)
	if err != nil {
		t.Fatalf("status on empty set: %v", err)
	}
	if status.Monitoring || status.AnyActive || status.Window != nil {
		t.Fatalf("empty set must report no monitoring, got %+v", status)
	}

	added, err := uc.Add(context.Background(), nightlyInput())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	status, err = uc.Status(context.Background(), lateNight)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Monitoring || !status.AnyActive || status.Window == nil {
		t.Fatalf("enabled nightly schedule must be active at 23:30, got %+v", status)
	}
	if status.Window.Start.After(lateNight) || status.Window.End.Before(lateNight) {
		t.Fatalf("window must envelope now: %+v", status.Window)
	}

	if _, err := uc.SetEnabled(context.Background(), added.ID, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	status, err = uc.Status(context.Background(), lateNight)
	if err != nil {
		t.Fatalf("status after disable: %v", err)
	}
	if status.Monitoring || status.AnyActive {
		t.Fatalf("disabling the only schedule must stop monitoring, got %+v", status)
	}
}

func TestRemoveUnknownScheduleFails(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	if err := uc.Remove(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
