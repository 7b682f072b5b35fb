package in

import (
	"context"

	"mindgate/internal/modules/host/dto"
	hostin "mindgate/internal/modules/host/port/in"
	sessiondto "mindgate/internal/modules/session/dto"
)

type CLIHandler struct {
	usecase hostin.Usecase
}

func NewCLIHandler(usecase hostin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Run(ctx context.Context) error {
	return h.usecase.RunDaemon(ctx)
}

func (h CLIHandler) Start(ctx context.Context) error {
	return h.usecase.StartDaemon(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) error {
	return h.usecase.StopDaemon(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.DaemonRuntimeStatusOutput, error) {
	return h.usecase.DaemonStatus(ctx)
}

func (h CLIHandler) Logs(ctx context.Context, tail int) (string, error) {
	return h.usecase.DaemonLogs(ctx, tail)
}

func (h CLIHandler) SessionStart(ctx context.Context, intentionID, targetID string) (sessiondto.SessionOutput, error) {
	return h.usecase.SessionStart(ctx, sessiondto.StartInput{IntentionID: intentionID, TargetID: targetID})
}

func (h CLIHandler) SessionPause(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.SessionPause(ctx)
}

func (h CLIHandler) SessionResume(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.SessionResume(ctx)
}

func (h CLIHandler) SessionComplete(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.SessionComplete(ctx)
}

func (h CLIHandler) SessionSkip(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.SessionSkip(ctx)
}

func (h CLIHandler) SessionStatus(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.SessionStatus(ctx)
}

func (h CLIHandler) OpenLink(ctx context.Context, raw string) (sessiondto.SessionOutput, error) {
	return h.usecase.OpenLink(ctx, raw)
}

func (h CLIHandler) ReapplyNow(ctx context.Context) error {
	return h.usecase.ReapplyNow(ctx)
}
