package out

import (
	"context"

	"mindgate/internal/modules/schedule/domain"
)

// ScheduleStore persists the ordered schedule list.
type ScheduleStore interface {
	Load(ctx context.Context) ([]domain.Schedule, error)
	Save(ctx context.Context, schedules []domain.Schedule) error
}
