package out

import (
	"context"

	"mindgate/internal/modules/metadata/domain"
)

// RecordStore persists the key -> record mapping somewhere visible across
// process boundaries. Writes replace the whole value for a key; a reader
// must never observe a half-written record.
type RecordStore interface {
	Put(ctx context.Context, key string, record domain.ShieldRecord) error
	Get(ctx context.Context, key string) (domain.ShieldRecord, bool, error)
	GetAll(ctx context.Context) (map[string]domain.ShieldRecord, error)
}
