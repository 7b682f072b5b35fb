package out

import (
	"context"
	"time"

	scheduledto "mindgate/internal/modules/schedule/dto"
	sessiondto "mindgate/internal/modules/session/dto"
)

type DaemonStore interface {
	WritePID(ctx context.Context, pid int) error
	ReadPID(ctx context.Context) (int, error)
	ClearPID(ctx context.Context) error
	SocketPath() string
	LogPath() string
}

// DaemonStatus is what the running daemon reports about itself.
type DaemonStatus struct {
	PID        int
	Monitoring bool
	AnyActive  bool
	Enforcing  bool
	Window     *scheduledto.WindowOutput
	Session    sessiondto.SessionOutput
	StartedAt  time.Time
}

// DaemonRuntimeStatus wraps DaemonStatus with what the caller can learn
// without a reachable daemon.
type DaemonRuntimeStatus struct {
	Running    bool
	PID        int
	SocketPath string
	Status     DaemonStatus
}

// IPCServer serves the stable JSON-RPC daemon API on a unix socket.
type IPCServer interface {
	Serve(ctx context.Context, socketPath string, handler IPCHandler) error
}

// IPCClient talks to the local daemon JSON-RPC API.
type IPCClient interface {
	SessionStart(ctx context.Context, socketPath string, input sessiondto.StartInput) (sessiondto.SessionOutput, error)
	SessionPause(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error)
	SessionResume(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error)
	SessionComplete(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error)
	SessionSkip(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error)
	SessionStatus(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error)
	OpenLink(ctx context.Context, socketPath string, raw string) (sessiondto.SessionOutput, error)
	ReapplyNow(ctx context.Context, socketPath string) error
	Status(ctx context.Context, socketPath string) (DaemonStatus, error)
	Stop(ctx context.Context, socketPath string) error
}

// IPCHandler is the daemon-side implementation behind the socket.
type IPCHandler interface {
	SessionStart(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error)
	SessionPause(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionResume(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionComplete(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionSkip(ctx context.Context) (sessiondto.SessionOutput, error)
	SessionStatus(ctx context.Context) (sessiondto.SessionOutput, error)
	OpenLink(ctx context.Context, raw string) (sessiondto.SessionOutput, error)
	ReapplyNow(ctx context.Context) error
	Status(ctx context.Context) (DaemonStatus, error)
	Stop(ctx context.Context) error
}
