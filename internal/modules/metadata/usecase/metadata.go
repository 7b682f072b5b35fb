package usecase

import (
	"context"
	"fmt"
	"time"

	"mindgate/internal/modules/metadata/domain"
	metadatain "mindgate/internal/modules/metadata/port/in"
	metadataout "mindgate/internal/modules/metadata/port/out"
	"mindgate/internal/platform/clock"
	apperrors "mindgate/internal/platform/errors"
)

const mirrorPrefix = "mirror:"

type Interactor struct {
	store   metadataout.RecordStore
	clock   clock.Clock
	horizon time.Duration
}

func NewInteractor(store metadataout.RecordStore, clk clock.Clock, horizon time.Duration) metadatain.Usecase {
	return &Interactor{store: store, clock: clk, horizon: horizon}
}

func (i *Interactor) Put(ctx context.Context, record domain.ShieldRecord) error {
	if record.TargetID == "" {
		return fmt.Errorf("%w: record target id is required", apperrors.ErrInvalidInput)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = i.clock.Now()
	}
	return i.store.Put(ctx, record.TargetID, record)
}

func (i *Interactor) Get(ctx context.Context, targetID string) (domain.ShieldRecord, bool, error) {
	record, ok, err := i.store.Get(ctx, targetID)
	if err != nil || !ok {
		return domain.ShieldRecord{}, false, err
	}
	if !record.FreshAt(i.clock.Now(), i.horizon) {
		return domain.ShieldRecord{}, false, nil
	}
	return record, true, nil
}

func (i *Interactor) GetRaw(ctx context.Context, targetID string) (domain.ShieldRecord, bool, error) {
	return i.store.Get(ctx, targetID)
}

func (i *Interactor) GetAll(ctx context.Context) (map[string]domain.ShieldRecord, error) {
	return i.store.GetAll(ctx)
}

func (i *Interactor) PutMirror(ctx context.Context, record domain.ShieldRecord) error {
	if record.TargetID == "" {
		return fmt.Errorf("%w: mirror target id is required", apperrors.ErrInvalidInput)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = i.clock.Now()
	}
	return i.store.Put(ctx, mirrorPrefix+record.TargetID, record)
}

func (i *Interactor) GetMirror(ctx context.Context, targetID string) (domain.ShieldRecord, bool, error) {
	return i.store.Get(ctx, mirrorPrefix+targetID)
}
