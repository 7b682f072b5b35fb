package out

import (
	"context"

	"mindgate/internal/modules/restriction/domain"
)

// TargetStore persists the registry's own target mapping, keyed by target
// identifier.
type TargetStore interface {
	Load(ctx context.Context) (map[string]domain.Target, error)
	Save(ctx context.Context, targets map[string]domain.Target) error
}

// Enforcer is the external enforcement capability: it accepts an
// enable/clear instruction for a set of targets and independently invokes
// the intercept entry points. Authorization is retryable, never fatal.
type Enforcer interface {
	Apply(ctx context.Context, targets []domain.EnforcedTarget) error
	Clear(ctx context.Context) error
	Authorized(ctx context.Context) (bool, error)
}
