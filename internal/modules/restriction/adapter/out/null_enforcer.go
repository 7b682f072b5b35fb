package out

import (
	"context"

	"mindgate/internal/modules/restriction/domain"
	restrictionout "mindgate/internal/modules/restriction/port/out"
)

// NullEnforcer stands in when no enforcer plugin is configured: the registry
// and stores keep working, nothing is actually blocked.
type NullEnforcer struct{}

func NewNullEnforcer() restrictionout.Enforcer {
	return NullEnforcer{}
}

func (NullEnforcer) Apply(context.Context, []domain.EnforcedTarget) error { return nil }

func (NullEnforcer) Clear(context.Context) error { return nil }

func (NullEnforcer) Authorized(context.Context) (bool, error) { return true, nil }
