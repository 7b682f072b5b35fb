package usecase_test

import (
	"context"
	"testing"
	"time"

	notifyout "mindgate/internal/modules/notify/adapter/out"
	notifyin "mindgate/internal/modules/notify/port/in"
	"mindgate/internal/modules/notify/usecase"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func TestScheduleCancelRoundTrip(t *testing.T) {
	t.Parallel()
	state := t.TempDir()
	clk := fixedClock{now: time.Date(2026, 3, 4, 21, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(notifyout.NewFileSpool(state), clk)

	request, err := uc.Schedule(context.Background(), notifyin.ScheduleInput{
		TargetID: "app-abc",
		Title:    "Ready when you are",
		Link:     "mindgate://intention?intention=breathe&target=app-abc",
		After:    30 * time.Second,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if request.ID == "" {
		t.Fatal("request id must be assigned")
	}
	if !request.DeliverAt.Equal(clk.now.Add(30 * time.Second)) {
		t.Fatalf("deliver_at mismatch: %v", request.DeliverAt)
	}

	pending, err := uc.Pending(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != request.ID {
		t.Fatalf("expected one pending request, got %+v", pending)
	}

	if err := uc.Cancel(context.Background(), request.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := uc.Cancel(context.Background(), request.ID); err != nil {
		t.Fatalf("cancel must be idempotent: %v", err)
	}
	pending, err = uc.Pending(context.Background())
	if err != nil {
		t.Fatalf("pending after cancel: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty spool, got %+v", pending)
	}
}

func TestCancelForTargetDropsOnlyThatTarget(t *testing.T) {
	t.Parallel()
	state := t.TempDir()
	clk := fixedClock{now: time.Date(2026, 3, 4, 21, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(notifyout.NewFileSpool(state), clk)

	for _, target := range []string{"app-abc", "app-abc", "app-xyz"} {
		if _, err := uc.Schedule(context.Background(), notifyin.ScheduleInput{TargetID: target, Title: "t"}); err != nil {
			t.Fatalf("schedule for %s: %v", target, err)
		}
	}

	if err := uc.CancelForTarget(context.Background(), "app-abc"); err != nil {
		t.Fatalf("cancel for target: %v", err)
	}
	pending, err := uc.Pending(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].TargetID != "app-xyz" {
		t.Fatalf("expected only app-xyz left, got %+v", pending)
	}
}
