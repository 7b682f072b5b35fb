package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	metadataout "mindgate/internal/modules/metadata/adapter/out"
	"mindgate/internal/modules/metadata/domain"
	"mindgate/internal/modules/metadata/usecase"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestPutOverwritesWholeRecord(t *testing.T) {
	t.Parallel()
	state := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(metadataout.NewFileRecordStore(state), clk, 24*time.Hour)

	first := domain.ShieldRecord{
		TargetID:     "app-abc",
		DisplayName:  "Instagram",
		CategoryName: "Social",
		IntentionID:  "breathe",
		FromCategory: true,
	}
	if err := uc.Put(context.Background(), first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	second := domain.ShieldRecord{TargetID: "app-abc", DisplayName: "Instagram"}
	if err := uc.Put(context.Background(), second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, ok, err := uc.Get(context.Background(), "app-abc")
	if err != nil || !ok {
		t.Fatalf("get after overwrite: ok=%v err=%v", ok, err)
	}
	if got.CategoryName != "" || got.IntentionID != "" || got.FromCategory {
		t.Fatalf("fields from first record leaked into second: %+v", got)
	}
	if !got.CreatedAt.Equal(clk.now) {
		t.Fatalf("created_at not stamped by clock: %v", got.CreatedAt)
	}
}

func TestMissingAndCorruptReadAsAbsent(t *testing.T) {
	t.Parallel()
	state := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(metadataout.NewFileRecordStore(state), clk, 24*time.Hour)

	if _, ok, err := uc.Get(context.Background(), "never-written"); err != nil || ok {
		t.Fatalf("expected absent on empty store, got ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(filepath.Join(state, "shield-metadata.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt store file: %v", err)
	}
	if _, ok, err := uc.Get(context.Background(), "anything"); err != nil || ok {
		t.Fatalf("corrupt store must read as absent, got ok=%v err=%v", ok, err)
	}
	all, err := uc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all on corrupt store: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty mapping, got %d entries", len(all))
	}
}

func TestMirrorKeyspaceIsIndependentOfShieldRecords(t *testing.T) {
	t.Parallel()
	state := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(metadataout.NewFileRecordStore(state), clk, 24*time.Hour)

	mirror := domain.ShieldRecord{TargetID: "app-abc", DisplayName: "Instagram", IntentionID: "reflect"}
	if err := uc.PutMirror(context.Background(), mirror); err != nil {
		t.Fatalf("put mirror: %v", err)
	}

	// No shield record exists yet, only the registry's projection.
	if _, ok, err := uc.Get(context.Background(), "app-abc"); err != nil || ok {
		t.Fatalf("mirror must not be visible as a shield record, got ok=%v err=%v", ok, err)
	}
	got, ok, err := uc.GetMirror(context.Background(), "app-abc")
	if err != nil || !ok {
		t.Fatalf("get mirror: ok=%v err=%v", ok, err)
	}
	if got.IntentionID != "reflect" {
		t.Fatalf("unexpected mirror: %+v", got)
	}

	// Mirrors are configuration: the staleness horizon never hides them.
	clk.now = clk.now.Add(48 * time.Hour)
	if _, ok, _ := uc.GetMirror(context.Background(), "app-abc"); !ok {
		t.Fatal("mirror must survive the staleness horizon")
	}
}

func TestStaleRecordReadsAsAbsentButRawSurvives(t *testing.T) {
	t.Parallel()
	state := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(metadataout.NewFileRecordStore(state), clk, 24*time.Hour)

	if err := uc.Put(context.Background(), domain.ShieldRecord{TargetID: "app-abc", IntentionID: "reflect"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	clk.now = clk.now.Add(25 * time.Hour)
	if _, ok, err := uc.Get(context.Background(), "app-abc"); err != nil || ok {
		t.Fatalf("record past horizon must read as absent, got ok=%v err=%v", ok, err)
	}
	raw, ok, err := uc.GetRaw(context.Background(), "app-abc")
	if err != nil || !ok {
		t.Fatalf("raw get must ignore horizon: ok=%v err=%v", ok, err)
	}
	if raw.IntentionID != "reflect" {
		t.Fatalf("unexpected raw record: %+v", raw)
	}
}
