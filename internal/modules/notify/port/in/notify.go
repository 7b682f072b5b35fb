package in

import (
	"context"
	"time"

	"mindgate/internal/modules/notify/domain"
)

type ScheduleInput struct {
	TargetID string
	Title    string
	Body     string
	Link     string
	After    time.Duration
}

type Usecase interface {
	Schedule(ctx context.Context, input ScheduleInput) (domain.Request, error)
	Cancel(ctx context.Context, requestID string) error
	// CancelForTarget drops every pending request referencing a target;
	// called when the target's restriction is removed.
	CancelForTarget(ctx context.Context, targetID string) error
	Pending(ctx context.Context) ([]domain.Request, error)
	Authorized(ctx context.Context) (bool, error)
}
