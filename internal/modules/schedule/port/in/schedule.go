package in

import (
	"context"
	"time"

	"mindgate/internal/modules/schedule/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.ScheduleOutput, error)
	SetEnabled(ctx context.Context, scheduleID string, enabled bool) (dto.ScheduleOutput, error)
	Remove(ctx context.Context, scheduleID string) error
	List(ctx context.Context) ([]dto.ScheduleOutput, error)

	// Status answers "is any schedule active now" plus the combined
	// monitoring window; Monitoring is false when nothing is enabled.
	Status(ctx context.Context, now time.Time) (dto.StatusOutput, error)
}
