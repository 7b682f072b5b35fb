package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	eventsdomain "mindgate/internal/modules/events/domain"
	eventsusecase "mindgate/internal/modules/events/usecase"
	intentionout "mindgate/internal/modules/intention/adapter/out"
	intentionusecase "mindgate/internal/modules/intention/usecase"
	"mindgate/internal/modules/intercept/domain"
	"mindgate/internal/modules/intercept/dto"
	interceptin "mindgate/internal/modules/intercept/port/in"
	"mindgate/internal/modules/intercept/usecase"
	metadataout "mindgate/internal/modules/metadata/adapter/out"
	metadatadomain "mindgate/internal/modules/metadata/domain"
	metadatain "mindgate/internal/modules/metadata/port/in"
	metadatausecase "mindgate/internal/modules/metadata/usecase"
	notifydomain "mindgate/internal/modules/notify/domain"
	notifyin "mindgate/internal/modules/notify/port/in"
	notifyusecase "mindgate/internal/modules/notify/usecase"
	"mindgate/internal/platform/deeplink"
	"mindgate/internal/platform/targetid"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type memorySpool struct {
	requests map[string]notifydomain.Request
	saveErr  error
}

func newMemorySpool() *memorySpool {
	return &memorySpool{requests: map[string]notifydomain.Request{}}
}

func (s *memorySpool) Save(_ context.Context, request notifydomain.Request) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.requests[request.ID] = request
	return nil
}

func (s *memorySpool) Remove(_ context.Context, requestID string) error {
	delete(s.requests, requestID)
	return nil
}

func (s *memorySpool) List(context.Context) ([]notifydomain.Request, error) {
	out := make([]notifydomain.Request, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r)
	}
	return out, nil
}

func (s *memorySpool) Authorized(context.Context) (bool, error) { return true, nil }

type memoryLedger struct {
	events []eventsdomain.Event
}

func (l *memoryLedger) Append(_ context.Context, event eventsdomain.Event) error {
	l.events = append(l.events, event)
	return nil
}

func (l *memoryLedger) Tail(_ context.Context, limit int) ([]eventsdomain.Event, error) {
	return l.events, nil
}

func (l *memoryLedger) kinds() []eventsdomain.Kind {
	out := make([]eventsdomain.Kind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	uc       interceptin.Usecase
	metadata metadatain.Usecase
	notify   notifyin.Usecase
	spool    *memorySpool
	ledger   *memoryLedger
	clk      *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)}
	metadata := metadatausecase.NewInteractor(metadataout.NewFileRecordStore(state), clk, 24*time.Hour)
	intentions := intentionusecase.NewInteractor(
		intentionout.NewYAMLCatalogStore(filepath.Join(state, "intentions.yaml")),
		intentionout.NewRandomPicker(1),
	)
	spool := newMemorySpool()
	notify := notifyusecase.NewInteractor(spool, clk)
	ledger := &memoryLedger{}
	events := eventsusecase.NewInteractor(ledger, clk, nil)
	uc := usecase.NewInteractor(metadata, intentions, notify, events)
	return &fixture{uc: uc, metadata: metadata, notify: notify, spool: spool, ledger: ledger, clk: clk}
}

func TestShieldUsesAssignedIntentionFromMirror(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	ref := dto.ShieldInput{Kind: "app", Token: []byte("token-a"), DisplayName: "Hinted"}
	id := targetid.Derive(ref.Kind, ref.Token)
	if err := f.metadata.PutMirror(ctx, metadatadomain.ShieldRecord{
		TargetID:    id,
		DisplayName: "Configured",
		IntentionID: "breathe",
	}); err != nil {
		t.Fatalf("put mirror: %v", err)
	}

	directive, err := f.uc.Shield(ctx, ref)
	if err != nil {
		t.Fatalf("shield: %v", err)
	}
	if directive.TargetID != id {
		t.Fatalf("directive target mismatch: got %s want %s", directive.TargetID, id)
	}
	if directive.IntentionID != "breathe" {
		t.Fatalf("assigned intention must win: got %s", directive.IntentionID)
	}

	record, ok, err := f.metadata.Get(ctx, id)
	if err != nil || !ok {
		t.Fatalf("shield must persist the handoff record: ok=%v err=%v", ok, err)
	}
	if record.IntentionID != "breathe" || record.DisplayName != "Configured" {
		t.Fatalf("record mismatch: %+v", record)
	}
	if got := f.ledger.kinds(); len(got) != 1 || got[0] != eventsdomain.KindShieldPresented {
		t.Fatalf("expected one shield_presented event, got %v", got)
	}
}

func TestShieldWithoutMirrorFallsBackToHints(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	ref := dto.ShieldInput{Kind: "domain", Token: []byte("example.com"), DisplayName: "example.com"}
	directive, err := f.uc.Shield(ctx, ref)
	if err != nil {
		t.Fatalf("shield: %v", err)
	}
	if directive.IntentionID == "" {
		t.Fatal("shield must pick an intention even without registry configuration")
	}
	record, ok, err := f.metadata.Get(ctx, directive.TargetID)
	if err != nil || !ok {
		t.Fatalf("record: ok=%v err=%v", ok, err)
	}
	if record.DisplayName != "example.com" {
		t.Fatalf("platform hint must survive into the record, got %+v", record)
	}
}

func TestPrimaryWithoutMetadataDefers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resolution, err := f.uc.Action(context.Background(), "app-unknown", string(domain.ButtonPrimary))
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if resolution != string(domain.ResolutionDefer) {
		t.Fatalf("missing handoff must fail open, got %s", resolution)
	}
	if len(f.spool.requests) != 0 {
		t.Fatalf("nothing to resume, nothing to schedule: %v", f.spool.requests)
	}
}

func TestPrimaryWithStaleMetadataDefers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	ref := dto.ShieldInput{Kind: "app", Token: []byte("token-a")}
	directive, err := f.uc.Shield(ctx, ref)
	if err != nil {
		t.Fatalf("shield: %v", err)
	}
	f.clk.now = f.clk.now.Add(25 * time.Hour)

	resolution, err := f.uc.Action(ctx, directive.TargetID, string(domain.ButtonPrimary))
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if resolution != string(domain.ResolutionDefer) {
		t.Fatalf("a record past the horizon must read as absent, got %s", resolution)
	}
}

func TestPrimarySchedulesDeepLinkAndCloses(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	ref := dto.ShieldInput{Kind: "category", Token: []byte("cat-social"), DisplayName: "Social", FromCategory: true}
	directive, err := f.uc.Shield(ctx, ref)
	if err != nil {
		t.Fatalf("shield: %v", err)
	}

	resolution, err := f.uc.Action(ctx, directive.TargetID, string(domain.ButtonPrimary))
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if resolution != string(domain.ResolutionClose) {
		t.Fatalf("primary with a fresh record must close, got %s", resolution)
	}
	if len(f.spool.requests) != 1 {
		t.Fatalf("expected one scheduled notification, got %d", len(f.spool.requests))
	}
	for _, request := range f.spool.requests {
		link, err := deeplink.Parse(request.Link)
		if err != nil {
			t.Fatalf("notification must carry a parseable intention link: %v", err)
		}
		if link.TargetID != directive.TargetID || link.IntentionID != directive.IntentionID {
			t.Fatalf("link mismatch: %+v vs directive %+v", link, directive)
		}
		if !link.FromCategory {
			t.Fatal("category context must ride along in the link")
		}
	}
}

func TestPrimaryClosesEvenWhenSchedulingFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	ref := dto.ShieldInput{Kind: "app", Token: []byte("token-a")}
	directive, err := f.uc.Shield(ctx, ref)
	if err != nil {
		t.Fatalf("shield: %v", err)
	}
	f.spool.saveErr = errors.New("surface unavailable")

	resolution, err := f.uc.Action(ctx, directive.TargetID, string(domain.ButtonPrimary))
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if resolution != string(domain.ResolutionClose) {
		t.Fatalf("scheduling failure must still close, got %s", resolution)
	}
	kinds := f.ledger.kinds()
	var sawFailure bool
	for _, k := range kinds {
		if k == eventsdomain.KindNotifyFailed {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatalf("scheduling failure must leave a ledger trail, got %v", kinds)
	}
}

func TestSecondaryDefersAndRecordsDismissal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resolution, err := f.uc.Action(context.Background(), "app-any", string(domain.ButtonSecondary))
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if resolution != string(domain.ResolutionDefer) {
		t.Fatalf("secondary must defer, got %s", resolution)
	}
	if got := f.ledger.kinds(); len(got) != 1 || got[0] != eventsdomain.KindShieldDismissed {
		t.Fatalf("expected shield_dismissed, got %v", got)
	}
}

func TestUnknownButtonDefers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resolution, err := f.uc.Action(context.Background(), "app-any", "tertiary")
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if resolution != string(domain.ResolutionDefer) {
		t.Fatalf("unknown button must defer, got %s", resolution)
	}
}
