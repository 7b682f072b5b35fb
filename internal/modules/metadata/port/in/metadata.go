package in

import (
	"context"

	"mindgate/internal/modules/metadata/domain"
)

type Usecase interface {
	// Put stores the shield handoff record under the target identifier.
	Put(ctx context.Context, record domain.ShieldRecord) error
	// Get returns the shield record for a target, or ok=false when it is
	// missing, undecodable, or older than the staleness horizon. Missing
	// metadata is a legitimate state, never an error.
	Get(ctx context.Context, targetID string) (domain.ShieldRecord, bool, error)
	// GetRaw ignores the staleness horizon.
	GetRaw(ctx context.Context, targetID string) (domain.ShieldRecord, bool, error)
	GetAll(ctx context.Context) (map[string]domain.ShieldRecord, error)

	// PutMirror/GetMirror hold the registry's minimal target projection in
	// a separate keyspace of the same store, so the intercept processes can
	// read display/intention configuration with only store access. Mirrors
	// are configuration, not handoffs: the staleness horizon never applies.
	PutMirror(ctx context.Context, record domain.ShieldRecord) error
	GetMirror(ctx context.Context, targetID string) (domain.ShieldRecord, bool, error)
}
