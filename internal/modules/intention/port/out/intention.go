package out

import (
	"context"

	"mindgate/internal/modules/intention/domain"
)

type CatalogStore interface {
	Load(ctx context.Context) ([]domain.Intention, error)
}

// Picker chooses the intention to present for a block. The choice policy is
// a product decision, so it sits behind an interface and tests substitute a
// deterministic implementation.
type Picker interface {
	Pick(catalog []domain.Intention, assignedID string) (domain.Intention, error)
}
