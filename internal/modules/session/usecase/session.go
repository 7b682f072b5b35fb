package usecase

import (
	"context"
	"fmt"
	"time"

	eventsdomain "mindgate/internal/modules/events/domain"
	eventsin "mindgate/internal/modules/events/port/in"
	intentionin "mindgate/internal/modules/intention/port/in"
	metadatain "mindgate/internal/modules/metadata/port/in"
	notifyin "mindgate/internal/modules/notify/port/in"
	"mindgate/internal/modules/session/domain"
	"mindgate/internal/modules/session/dto"
	sessionin "mindgate/internal/modules/session/port/in"
	"mindgate/internal/modules/session/service"
	"mindgate/internal/platform/clock"
	"mindgate/internal/platform/deeplink"
)

type Interactor struct {
	manager    *service.Manager
	intentions intentionin.Usecase
	metadata   metadatain.Usecase
	notify     notifyin.Usecase
	events     eventsin.Usecase
	clock      clock.Clock
}

func NewInteractor(manager *service.Manager, intentions intentionin.Usecase, metadata metadatain.Usecase, notify notifyin.Usecase, events eventsin.Usecase, clk clock.Clock) sessionin.Usecase {
	return &Interactor{
		manager:    manager,
		intentions: intentions,
		metadata:   metadata,
		notify:     notify,
		events:     events,
		clock:      clk,
	}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	intention, err := i.intentions.Get(ctx, input.IntentionID)
	if err != nil {
		return dto.SessionOutput{}, fmt.Errorf("resolve intention: %w", err)
	}

	session := domain.New(intention.ID, input.TargetID, intention.Duration, i.clock.Now())
	session.FromCategory = input.FromCategory
	if input.TargetID != "" {
		// The shield handoff record, when fresh, carries the display
		// context the session screen shows. Absence is fine; the session
		// just has no target framing.
		if record, ok, err := i.metadata.Get(ctx, input.TargetID); err == nil && ok {
			session.DisplayName = record.DisplayName
			session.FromCategory = session.FromCategory || record.FromCategory
		}
	}

	if err := i.manager.Begin(session); err != nil {
		return dto.SessionOutput{}, err
	}
	i.events.Record(ctx, eventsdomain.Event{
		Kind:        eventsdomain.KindSessionStarted,
		TargetID:    input.TargetID,
		IntentionID: intention.ID,
	})
	return toOutput(*session), nil
}

func (i *Interactor) OpenLink(ctx context.Context, raw string) (dto.SessionOutput, error) {
	link, err := deeplink.Parse(raw)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.Start(ctx, dto.StartInput{
		IntentionID:  link.IntentionID,
		TargetID:     link.TargetID,
		FromCategory: link.FromCategory,
	})
}

func (i *Interactor) Pause(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.manager.Mutate(func(s *domain.Session) error { return s.Pause() })
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.manager.Mutate(func(s *domain.Session) error { return s.Resume() })
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Complete(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.manager.Mutate(func(s *domain.Session) error { return s.Complete() })
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.manager.Reset()

	body := "Intention complete. Well done."
	if session.DisplayName != "" {
		body = fmt.Sprintf("Intention complete. %s is ready when you are.", session.DisplayName)
	}
	if _, err := i.notify.Schedule(ctx, notifyin.ScheduleInput{
		TargetID: session.TargetID,
		Title:    "Well done",
		Body:     body,
	}); err != nil {
		i.events.Record(ctx, eventsdomain.Event{
			Kind:        eventsdomain.KindNotifyFailed,
			TargetID:    session.TargetID,
			IntentionID: session.IntentionID,
			Detail:      err.Error(),
		})
	}
	i.events.Record(ctx, eventsdomain.Event{
		Kind:        eventsdomain.KindSessionCompleted,
		TargetID:    session.TargetID,
		IntentionID: session.IntentionID,
	})
	return toOutput(session), nil
}

func (i *Interactor) Skip(ctx context.Context) (dto.SessionOutput, error) {
	if _, ok := i.manager.Snapshot(); !ok {
		// Nothing live; skipping twice is the same as skipping once.
		return idleOutput(), nil
	}
	session, err := i.manager.Mutate(func(s *domain.Session) error {
		s.Skip()
		return nil
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.manager.Reset()
	i.events.Record(ctx, eventsdomain.Event{
		Kind:        eventsdomain.KindSessionSkipped,
		TargetID:    session.TargetID,
		IntentionID: session.IntentionID,
	})
	return toOutput(session), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.SessionOutput, error) {
	session, ok := i.manager.Snapshot()
	if !ok {
		return idleOutput(), nil
	}
	return toOutput(session), nil
}

func (i *Interactor) Tick(ctx context.Context, delta time.Duration) {
	i.manager.Mutate(func(s *domain.Session) error {
		s.Tick(delta)
		return nil
	})
}

func (i *Interactor) Live() bool {
	return i.manager.Live()
}

func idleOutput() dto.SessionOutput {
	return dto.SessionOutput{State: string(domain.StateIdle)}
}

func toOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		State:        string(s.State),
		IntentionID:  s.IntentionID,
		TargetID:     s.TargetID,
		DisplayName:  s.DisplayName,
		FromCategory: s.FromCategory,
		Elapsed:      s.Elapsed,
		Total:        s.Total,
		Progress:     s.Progress(),
	}
}
