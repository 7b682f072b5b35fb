package usecase

import (
	"context"

	"go.uber.org/zap"

	"mindgate/internal/modules/events/domain"
	"mindgate/internal/modules/events/dto"
	eventsin "mindgate/internal/modules/events/port/in"
	eventsout "mindgate/internal/modules/events/port/out"
	"mindgate/internal/platform/clock"
)

type Interactor struct {
	ledger eventsout.Ledger
	clock  clock.Clock
	logger *zap.Logger
}

func NewInteractor(ledger eventsout.Ledger, clk clock.Clock, logger *zap.Logger) eventsin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{ledger: ledger, clock: clk, logger: logger}
}

func (i *Interactor) Record(ctx context.Context, event domain.Event) {
	if event.At.IsZero() {
		event.At = i.clock.Now()
	}
	if err := i.ledger.Append(ctx, event); err != nil {
		// Diagnostics must never block a dispatcher or session path.
		i.logger.Warn("append event", zap.String("kind", string(event.Kind)), zap.Error(err))
	}
}

func (i *Interactor) Tail(ctx context.Context, limit int) ([]dto.EventOutput, error) {
	if limit <= 0 {
		limit = 50
	}
	events, err := i.ledger.Tail(ctx, limit)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.EventOutput, 0, len(events))
	for _, event := range events {
		outputs = append(outputs, dto.EventOutput{
			Kind:        string(event.Kind),
			TargetID:    event.TargetID,
			IntentionID: event.IntentionID,
			Detail:      event.Detail,
			At:          event.At,
		})
	}
	return outputs, nil
}
