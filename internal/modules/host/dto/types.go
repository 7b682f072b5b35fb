package dto

import (
	"time"

	scheduledto "mindgate/internal/modules/schedule/dto"
	sessiondto "mindgate/internal/modules/session/dto"
)

type DaemonStatusOutput struct {
	PID        int
	Monitoring bool
	AnyActive  bool
	Enforcing  bool
	Window     *scheduledto.WindowOutput
	Session    sessiondto.SessionOutput
	StartedAt  time.Time
}

type DaemonRuntimeStatusOutput struct {
	Running    bool
	PID        int
	SocketPath string
	Status     DaemonStatusOutput
}
