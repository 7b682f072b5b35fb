package out

import (
	"context"

	"mindgate/internal/modules/notify/domain"
)

// Spool hands scheduled requests to the platform notification surface and
// supports cancel-by-identifier. The core only needs schedule, cancel, and
// authorization state; delivery itself is the platform's job.
type Spool interface {
	Save(ctx context.Context, request domain.Request) error
	Remove(ctx context.Context, requestID string) error
	List(ctx context.Context) ([]domain.Request, error)
	Authorized(ctx context.Context) (bool, error)
}
