package in

import (
	"context"

	"mindgate/internal/modules/intention/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.IntentionOutput, error)
	Get(ctx context.Context, intentionID string) (dto.IntentionOutput, error)
	// Pick returns the assigned intention when set, otherwise delegates to
	// the configured choosing strategy.
	Pick(ctx context.Context, assignedID string) (dto.IntentionOutput, error)
}
