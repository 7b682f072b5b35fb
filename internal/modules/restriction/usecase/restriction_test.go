package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	metadataout "mindgate/internal/modules/metadata/adapter/out"
	metadatain "mindgate/internal/modules/metadata/port/in"
	metadatausecase "mindgate/internal/modules/metadata/usecase"
	notifyadapter "mindgate/internal/modules/notify/adapter/out"
	notifyin "mindgate/internal/modules/notify/port/in"
	notifyusecase "mindgate/internal/modules/notify/usecase"
	restrictionout "mindgate/internal/modules/restriction/adapter/out"
	"mindgate/internal/modules/restriction/domain"
	"mindgate/internal/modules/restriction/dto"
	restrictionin "mindgate/internal/modules/restriction/port/in"
	"mindgate/internal/modules/restriction/service"
	"mindgate/internal/modules/restriction/usecase"
	apperrors "mindgate/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type recordingEnforcer struct {
	authorized bool
	applies    [][]domain.EnforcedTarget
	clears     int
}

func (e *recordingEnforcer) Apply(_ context.Context, targets []domain.EnforcedTarget) error {
	e.applies = append(e.applies, targets)
	return nil
}

func (e *recordingEnforcer) Clear(context.Context) error {
	e.clears++
	return nil
}

func (e *recordingEnforcer) Authorized(context.Context) (bool, error) {
	return e.authorized, nil
}

type fixture struct {
	uc       restrictionin.Usecase
	enforcer *recordingEnforcer
	metadata metadatain.Usecase
	notify   notifyin.Usecase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	state := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)}
	metadata := metadatausecase.NewInteractor(metadataout.NewFileRecordStore(state), clk, 24*time.Hour)
	notify := notifyusecase.NewInteractor(notifyadapter.NewFileSpool(state), clk)
	enforcer := &recordingEnforcer{authorized: true}
	svc := service.NewRegistryService(restrictionout.NewFileTargetStore(state))
	uc := usecase.NewInteractor(svc, enforcer, metadata, notify)
	return fixture{uc: uc, enforcer: enforcer, metadata: metadata, notify: notify}
}

func TestSelectionReplaceKeepsSurvivorSettings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.SetSelection(ctx, []dto.TargetInput{
		{Kind: "app", Token: []byte("token-a"), DisplayName: "AppA"},
		{Kind: "app", Token: []byte("token-b"), DisplayName: "AppB"},
	})
	if err != nil {
		t.Fatalf("first selection: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected two targets, got %d", len(first))
	}
	var idB string
	for _, target := range first {
		if target.DisplayName == "AppB" {
			idB = target.ID
		}
	}
	if _, err := f.uc.AssignIntention(ctx, idB, "breathe"); err != nil {
		t.Fatalf("assign intention: %v", err)
	}

	second, err := f.uc.SetSelection(ctx, []dto.TargetInput{
		{Kind: "app", Token: []byte("token-b"), DisplayName: "AppB"},
		{Kind: "domain", Token: []byte("example.com"), DisplayName: "example.com"},
	})
	if err != nil {
		t.Fatalf("second selection: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("selection must be a full replace, got %d targets", len(second))
	}
	names := map[string]bool{}
	for _, target := range second {
		names[target.DisplayName] = true
		if target.DisplayName == "AppB" && target.IntentionID != "breathe" {
			t.Fatalf("surviving target must keep its assigned intention, got %+v", target)
		}
	}
	if names["AppA"] {
		t.Fatal("target A must be implicitly removed")
	}
	if !names["AppB"] || !names["example.com"] {
		t.Fatalf("expected exactly B and the domain, got %v", names)
	}
}

func TestApplyPushesEnabledTargetsAndIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	targets, err := f.uc.SetSelection(ctx, []dto.TargetInput{
		{Kind: "app", Token: []byte("token-a"), DisplayName: "AppA"},
		{Kind: "category", Token: []byte("cat-social"), DisplayName: "Social"},
	})
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	for _, target := range targets {
		if target.DisplayName == "AppA" {
			if _, err := f.uc.SetEnabled(ctx, target.ID, false); err != nil {
				t.Fatalf("disable: %v", err)
			}
		}
	}

	if err := f.uc.Apply(ctx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := f.uc.Apply(ctx); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(f.enforcer.applies) != 2 {
		t.Fatalf("expected two apply calls, got %d", len(f.enforcer.applies))
	}
	if !reflect.DeepEqual(f.enforcer.applies[0], f.enforcer.applies[1]) {
		t.Fatalf("apply must hand the enforcer identical input on unchanged state:\n%+v\n%+v",
			f.enforcer.applies[0], f.enforcer.applies[1])
	}
	if len(f.enforcer.applies[0]) != 1 || f.enforcer.applies[0][0].DisplayName != "Social" {
		t.Fatalf("only enabled targets reach the enforcer, got %+v", f.enforcer.applies[0])
	}
}

func TestApplyProjectsMirrorsForInterceptProcesses(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	targets, err := f.uc.SetSelection(ctx, []dto.TargetInput{
		{Kind: "category", Token: []byte("cat-social"), DisplayName: "Social"},
	})
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if _, err := f.uc.AssignIntention(ctx, targets[0].ID, "reflect"); err != nil {
		t.Fatalf("assign intention: %v", err)
	}
	if err := f.uc.Apply(ctx); err != nil {
		t.Fatalf("apply: %v", err)
	}

	mirror, ok, err := f.metadata.GetMirror(ctx, targets[0].ID)
	if err != nil {
		t.Fatalf("get mirror: %v", err)
	}
	if !ok {
		t.Fatal("apply must project a mirror for each enabled target")
	}
	if mirror.IntentionID != "reflect" || !mirror.FromCategory || mirror.CategoryName != "Social" {
		t.Fatalf("mirror projection mismatch: %+v", mirror)
	}
}

func TestApplyWithNothingEnabledClears(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if err := f.uc.Apply(ctx); err != nil {
		t.Fatalf("apply on empty registry: %v", err)
	}
	if f.enforcer.clears != 1 || len(f.enforcer.applies) != 0 {
		t.Fatalf("empty enabled set must clear, not apply: clears=%d applies=%d",
			f.enforcer.clears, len(f.enforcer.applies))
	}
}

func TestApplyRequiresAuthorization(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.enforcer.authorized = false
	if err := f.uc.Apply(context.Background()); !errors.Is(err, apperrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestSuspendLiftsEnforcementButKeepsSelection(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.SetSelection(ctx, []dto.TargetInput{
		{Kind: "app", Token: []byte("token-a"), DisplayName: "AppA"},
	}); err != nil {
		t.Fatalf("selection: %v", err)
	}
	if err := f.uc.Suspend(ctx); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if f.enforcer.clears != 1 {
		t.Fatalf("suspend must clear enforcement, clears=%d", f.enforcer.clears)
	}
	listed, err := f.uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("suspend must not touch the selection, got %+v", listed)
	}
}

func TestClearCancelsNotificationsAndLiftsEnforcement(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	targets, err := f.uc.SetSelection(ctx, []dto.TargetInput{
		{Kind: "app", Token: []byte("token-a"), DisplayName: "AppA"},
	})
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if _, err := f.notify.Schedule(ctx, notifyin.ScheduleInput{TargetID: targets[0].ID, Title: "pending"}); err != nil {
		t.Fatalf("schedule notification: %v", err)
	}

	if err := f.uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	listed, err := f.uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("clear must empty the selection, got %+v", listed)
	}
	if f.enforcer.clears != 1 {
		t.Fatalf("clear must lift enforcement, clears=%d", f.enforcer.clears)
	}
	pending, err := f.notify.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("clear must cancel pending notifications, got %+v", pending)
	}
}
