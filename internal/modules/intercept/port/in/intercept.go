package in

import (
	"context"

	"mindgate/internal/modules/intercept/dto"
)

// Usecase has one entry point per interception process. The two never share
// a call path; everything crosses through the metadata store.
type Usecase interface {
	// Shield prepares the block screen for a target that is about to open
	// and hands the action side its metadata record. Hot path: no long
	// blocking I/O.
	Shield(ctx context.Context, input dto.ShieldInput) (dto.DirectiveOutput, error)
	// Action resolves the user's choice on a presented shield. Every path
	// yields a resolution; an unknown button or missing metadata defers.
	Action(ctx context.Context, targetID, button string) (string, error)
}
