package in

import (
	"context"

	"mindgate/internal/modules/host/dto"
	sessiondto "mindgate/internal/modules/session/dto"
)

type Usecase interface {
	// RunDaemon blocks, running the host process in the foreground.
	RunDaemon(ctx context.Context) error
	// StartDaemon spawns the host process in the background and waits for
	// its socket.
	StartDaemon(ctx context.Context) error
	StopDaemon(ctx context.Context) error
	DaemonStatus(ctx context.Context) (dto.DaemonRuntimeStatusOutput, error)
	DaemonLogs(ctx context.Context, tail int) (string, error)

	// Session operations cross the IPC socket; the session itself lives in
	// the daemon's memory. A missing daemon yields ErrDaemonNotRunning.
	SessionStart(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error)
	SessionPause(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionResume(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionComplete(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionSkip(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionStatus(ctx context.Context) (sessiondto.SessionOutput, error)
	OpenLink(ctx context.Context, raw string) (sessiondto.SessionOutput, error)
	ReapplyNow(ctx context.Context) error
}
