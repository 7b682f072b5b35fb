package usecase

import (
	"context"
	"fmt"

	eventsdomain "mindgate/internal/modules/events/domain"
	eventsin "mindgate/internal/modules/events/port/in"
	intentionin "mindgate/internal/modules/intention/port/in"
	"mindgate/internal/modules/intercept/domain"
	"mindgate/internal/modules/intercept/dto"
	interceptin "mindgate/internal/modules/intercept/port/in"
	metadatadomain "mindgate/internal/modules/metadata/domain"
	metadatain "mindgate/internal/modules/metadata/port/in"
	notifyin "mindgate/internal/modules/notify/port/in"
	"mindgate/internal/platform/deeplink"
	"mindgate/internal/platform/targetid"
)

type Interactor struct {
	metadata   metadatain.Usecase
	intentions intentionin.Usecase
	notify     notifyin.Usecase
	events     eventsin.Usecase
}

func NewInteractor(metadata metadatain.Usecase, intentions intentionin.Usecase, notify notifyin.Usecase, events eventsin.Usecase) interceptin.Usecase {
	return &Interactor{metadata: metadata, intentions: intentions, notify: notify, events: events}
}

func (i *Interactor) Shield(ctx context.Context, input dto.ShieldInput) (dto.DirectiveOutput, error) {
	ref := domain.TargetRef{
		Kind:         input.Kind,
		Token:        input.Token,
		DisplayName:  input.DisplayName,
		CategoryName: input.CategoryName,
		FromCategory: input.FromCategory,
	}
	id := targetid.Derive(ref.Kind, ref.Token)

	displayName := ref.DisplayName
	categoryName := ref.CategoryName
	fromCategory := ref.FromCategory
	assigned := ""
	// A read failure here degrades to the platform's own hints; the shield
	// must come up either way.
	if mirror, ok, err := i.metadata.GetMirror(ctx, id); err == nil && ok {
		if mirror.DisplayName != "" {
			displayName = mirror.DisplayName
		}
		if mirror.CategoryName != "" {
			categoryName = mirror.CategoryName
		}
		fromCategory = mirror.FromCategory
		assigned = mirror.IntentionID
	}

	intention, err := i.intentions.Pick(ctx, assigned)
	if err != nil {
		return dto.DirectiveOutput{}, fmt.Errorf("pick intention: %w", err)
	}

	record := metadatadomain.ShieldRecord{
		TargetID:     id,
		DisplayName:  displayName,
		CategoryName: categoryName,
		IntentionID:  intention.ID,
		FromCategory: fromCategory,
	}
	if err := i.metadata.Put(ctx, record); err != nil {
		return dto.DirectiveOutput{}, fmt.Errorf("store shield record: %w", err)
	}
	i.events.Record(ctx, eventsdomain.Event{
		Kind:        eventsdomain.KindShieldPresented,
		TargetID:    id,
		IntentionID: intention.ID,
	})

	title := intention.Title
	subtitle := intention.Prompt
	if displayName != "" {
		subtitle = fmt.Sprintf("%s is waiting. %s", displayName, intention.Prompt)
	}
	return dto.DirectiveOutput{
		TargetID:    id,
		Title:       title,
		Subtitle:    subtitle,
		IntentionID: intention.ID,
	}, nil
}

func (i *Interactor) Action(ctx context.Context, targetID, button string) (string, error) {
	switch domain.Button(button) {
	case domain.ButtonPrimary:
		return string(i.primary(ctx, targetID)), nil
	case domain.ButtonSecondary:
		i.events.Record(ctx, eventsdomain.Event{
			Kind:     eventsdomain.KindShieldDismissed,
			TargetID: targetID,
		})
		return string(domain.ResolutionDefer), nil
	default:
		// Unrecognized actions allow through rather than trap the user.
		return string(domain.ResolutionDefer), nil
	}
}

func (i *Interactor) primary(ctx context.Context, targetID string) domain.Resolution {
	record, ok, err := i.metadata.Get(ctx, targetID)
	if err != nil || !ok {
		// Absent or stale handoff: the shield side never ran for this
		// target, or ran too long ago to trust. Allow through.
		return domain.ResolutionDefer
	}

	link := deeplink.IntentionLink{
		IntentionID:  record.IntentionID,
		TargetID:     targetID,
		FromCategory: record.FromCategory,
	}
	title := "Ready for your intention?"
	body := "Take a moment before continuing."
	if record.DisplayName != "" {
		body = fmt.Sprintf("Take a moment before returning to %s.", record.DisplayName)
	}
	_, scheduleErr := i.notify.Schedule(ctx, notifyin.ScheduleInput{
		TargetID: targetID,
		Title:    title,
		Body:     body,
		Link:     link.String(),
	})
	if scheduleErr != nil {
		// A missed notification is recoverable by reopening the app; leaked
		// access is not. Close regardless and leave a diagnostic trail.
		i.events.Record(ctx, eventsdomain.Event{
			Kind:        eventsdomain.KindNotifyFailed,
			TargetID:    targetID,
			IntentionID: record.IntentionID,
			Detail:      scheduleErr.Error(),
		})
	}
	i.events.Record(ctx, eventsdomain.Event{
		Kind:        eventsdomain.KindShieldClosed,
		TargetID:    targetID,
		IntentionID: record.IntentionID,
	})
	return domain.ResolutionClose
}
