package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mindgate/internal/modules/notify/domain"
	notifyin "mindgate/internal/modules/notify/port/in"
	notifyout "mindgate/internal/modules/notify/port/out"
	"mindgate/internal/platform/clock"
	apperrors "mindgate/internal/platform/errors"
)

type Interactor struct {
	spool notifyout.Spool
	clock clock.Clock
}

func NewInteractor(spool notifyout.Spool, clk clock.Clock) notifyin.Usecase {
	return &Interactor{spool: spool, clock: clk}
}

func (i *Interactor) Schedule(ctx context.Context, input notifyin.ScheduleInput) (domain.Request, error) {
	if input.Title == "" {
		return domain.Request{}, fmt.Errorf("%w: notification title is required", apperrors.ErrInvalidInput)
	}
	authorized, err := i.spool.Authorized(ctx)
	if err != nil {
		return domain.Request{}, err
	}
	if !authorized {
		return domain.Request{}, apperrors.ErrNotAuthorized
	}
	now := i.clock.Now()
	request := domain.Request{
		ID:        uuid.NewString(),
		TargetID:  input.TargetID,
		Title:     input.Title,
		Body:      input.Body,
		Link:      input.Link,
		DeliverAt: now.Add(input.After),
		CreatedAt: now,
	}
	if err := i.spool.Save(ctx, request); err != nil {
		return domain.Request{}, err
	}
	return request, nil
}

func (i *Interactor) Cancel(ctx context.Context, requestID string) error {
	return i.spool.Remove(ctx, requestID)
}

func (i *Interactor) CancelForTarget(ctx context.Context, targetID string) error {
	if targetID == "" {
		return nil
	}
	pending, err := i.spool.List(ctx)
	if err != nil {
		return err
	}
	for _, request := range pending {
		if request.TargetID != targetID {
			continue
		}
		if err := i.spool.Remove(ctx, request.ID); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interactor) Pending(ctx context.Context) ([]domain.Request, error) {
	return i.spool.List(ctx)
}

func (i *Interactor) Authorized(ctx context.Context) (bool, error) {
	return i.spool.Authorized(ctx)
}
