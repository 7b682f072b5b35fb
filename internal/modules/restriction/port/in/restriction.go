package in

import (
	"context"

	"mindgate/internal/modules/restriction/dto"
)

type Usecase interface {
	// SetSelection replaces the full target set; enable state and assigned
	// intentions survive for targets present in both old and new sets.
	SetSelection(ctx context.Context, targets []dto.TargetInput) ([]dto.TargetOutput, error)
	AssignIntention(ctx context.Context, targetID, intentionID string) (dto.TargetOutput, error)
	SetEnabled(ctx context.Context, targetID string, enabled bool) (dto.TargetOutput, error)

	// Apply pushes enabled targets to the enforcement capability and
	// mirrors their projections into the metadata store. Idempotent: it is
	// invoked both on structural changes and as a recovery action.
	Apply(ctx context.Context) error
	// Suspend lifts enforcement without touching the selection; the daemon
	// calls it when the schedule window closes.
	Suspend(ctx context.Context) error
	// Clear empties the selection and lifts all enforcement.
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]dto.TargetOutput, error)
}
