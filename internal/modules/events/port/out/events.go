package out

import (
	"context"

	"mindgate/internal/modules/events/domain"
)

type Ledger interface {
	Append(ctx context.Context, event domain.Event) error
	Tail(ctx context.Context, limit int) ([]domain.Event, error)
}
