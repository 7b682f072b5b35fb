package usecase

import (
	"context"
	"fmt"

	metadatadomain "mindgate/internal/modules/metadata/domain"
	metadatain "mindgate/internal/modules/metadata/port/in"
	notifyin "mindgate/internal/modules/notify/port/in"
	"mindgate/internal/modules/restriction/domain"
	"mindgate/internal/modules/restriction/dto"
	restrictionin "mindgate/internal/modules/restriction/port/in"
	restrictionout "mindgate/internal/modules/restriction/port/out"
	"mindgate/internal/modules/restriction/service"
	apperrors "mindgate/internal/platform/errors"
)

type Interactor struct {
	svc      *service.RegistryService
	enforcer restrictionout.Enforcer
	metadata metadatain.Usecase
	notify   notifyin.Usecase
}

func NewInteractor(svc *service.RegistryService, enforcer restrictionout.Enforcer, metadata metadatain.Usecase, notify notifyin.Usecase) restrictionin.Usecase {
	return &Interactor{svc: svc, enforcer: enforcer, metadata: metadata, notify: notify}
}

func (i *Interactor) SetSelection(ctx context.Context, inputs []dto.TargetInput) ([]dto.TargetOutput, error) {
	incoming := make([]domain.Target, 0, len(inputs))
	for _, in := range inputs {
		incoming = append(incoming, domain.Target{
			Kind:        domain.Kind(in.Kind),
			Token:       in.Token,
			DisplayName: in.DisplayName,
		})
	}
	before, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	replaced, err := i.svc.ReplaceSelection(ctx, incoming)
	if err != nil {
		return nil, err
	}

	// A target dropped from the selection is no longer restricted; its
	// pending deferred notifications must not fire.
	kept := make(map[string]bool, len(replaced))
	for _, t := range replaced {
		kept[t.ID()] = true
	}
	for _, t := range before {
		if !kept[t.ID()] {
			if err := i.notify.CancelForTarget(ctx, t.ID()); err != nil {
				return nil, err
			}
		}
	}
	return toOutputs(replaced), nil
}

func (i *Interactor) AssignIntention(ctx context.Context, targetID, intentionID string) (dto.TargetOutput, error) {
	target, err := i.svc.Update(ctx, targetID, func(t *domain.Target) {
		t.IntentionID = intentionID
	})
	if err != nil {
		return dto.TargetOutput{}, err
	}
	return toOutput(target), nil
}

func (i *Interactor) SetEnabled(ctx context.Context, targetID string, enabled bool) (dto.TargetOutput, error) {
	target, err := i.svc.Update(ctx, targetID, func(t *domain.Target) {
		t.Enabled = enabled
	})
	if err != nil {
		return dto.TargetOutput{}, err
	}
	if !enabled {
		if err := i.notify.CancelForTarget(ctx, targetID); err != nil {
			return dto.TargetOutput{}, err
		}
	}
	return toOutput(target), nil
}

func (i *Interactor) Apply(ctx context.Context) error {
	authorized, err := i.enforcer.Authorized(ctx)
	if err != nil {
		return err
	}
	if !authorized {
		return apperrors.ErrNotAuthorized
	}

	targets, err := i.svc.List(ctx)
	if err != nil {
		return err
	}
	enforced := make([]domain.EnforcedTarget, 0, len(targets))
	for _, t := range targets {
		if !t.Enabled {
			continue
		}
		enforced = append(enforced, domain.EnforcedTarget{
			ID:          t.ID(),
			Kind:        t.Kind,
			DisplayName: t.DisplayName,
			IntentionID: t.IntentionID,
		})
	}
	if len(enforced) == 0 {
		return i.enforcer.Clear(ctx)
	}
	if err := i.enforcer.Apply(ctx, enforced); err != nil {
		return fmt.Errorf("apply enforcement: %w", err)
	}

	// Mirror each enforced target so the intercept processes can derive
	// display content and the assigned intention from store access alone.
	for _, t := range targets {
		if !t.Enabled {
			continue
		}
		mirror := metadatadomain.ShieldRecord{
			TargetID:     t.ID(),
			DisplayName:  t.DisplayName,
			IntentionID:  t.IntentionID,
			FromCategory: t.Kind == domain.KindCategory,
		}
		if t.Kind == domain.KindCategory {
			mirror.CategoryName = t.DisplayName
		}
		if err := i.metadata.PutMirror(ctx, mirror); err != nil {
			return fmt.Errorf("mirror target %s: %w", t.ID(), err)
		}
	}
	return nil
}

func (i *Interactor) Suspend(ctx context.Context) error {
	return i.enforcer.Clear(ctx)
}

func (i *Interactor) Clear(ctx context.Context) error {
	targets, err := i.svc.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := i.notify.CancelForTarget(ctx, t.ID()); err != nil {
			return err
		}
	}
	if err := i.svc.Clear(ctx); err != nil {
		return err
	}
	return i.enforcer.Clear(ctx)
}

func (i *Interactor) List(ctx context.Context) ([]dto.TargetOutput, error) {
	targets, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(targets), nil
}

func toOutput(t domain.Target) dto.TargetOutput {
	return dto.TargetOutput{
		ID:          t.ID(),
		Kind:        string(t.Kind),
		DisplayName: t.DisplayName,
		Enabled:     t.Enabled,
		IntentionID: t.IntentionID,
	}
}

func toOutputs(targets []domain.Target) []dto.TargetOutput {
	out := make([]dto.TargetOutput, 0, len(targets))
	for _, t := range targets {
		out = append(out, toOutput(t))
	}
	return out
}
