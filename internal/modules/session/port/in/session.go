package in

import (
	"context"
	"time"

	"mindgate/internal/modules/session/dto"
)

type Usecase interface {
	// Start begins a fresh session for an intention. At most one session is
	// live; a second start fails with ErrSessionExists.
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	// OpenLink starts a session from a mindgate://intention deep link.
	OpenLink(ctx context.Context, raw string) (dto.SessionOutput, error)
	Pause(ctx context.Context) (dto.SessionOutput, error)
	Resume(ctx context.Context) (dto.SessionOutput, error)
	// Complete finishes the exercise, early or not, and fires the
	// celebratory notification.
	Complete(ctx context.Context) (dto.SessionOutput, error)
	// Skip abandons the exercise. Skipping with nothing live is a no-op.
	Skip(ctx context.Context) (dto.SessionOutput, error)
	Status(ctx context.Context) (dto.SessionOutput, error)
	// Tick advances the live session; driven by the daemon loop at a
	// one-second cadence while a session is live.
	Tick(ctx context.Context, delta time.Duration)
	// Live reports whether the daemon should be running the ticker.
	Live() bool
}
