package in

import (
	"context"

	"mindgate/internal/modules/events/domain"
	"mindgate/internal/modules/events/dto"
)

type Usecase interface {
	// Record appends on a best-effort basis: the ledger is diagnostics, so
	// implementations must not let an append failure block the caller.
	Record(ctx context.Context, event domain.Event)
	Tail(ctx context.Context, limit int) ([]dto.EventOutput, error)
}
