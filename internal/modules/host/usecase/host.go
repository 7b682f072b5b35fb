package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"mindgate/internal/modules/host/dto"
	hostin "mindgate/internal/modules/host/port/in"
	hostout "mindgate/internal/modules/host/port/out"
	"mindgate/internal/modules/host/service"
	sessiondto "mindgate/internal/modules/session/dto"
	apperrors "mindgate/internal/platform/errors"
)

type Interactor struct {
	svc    *service.HostService
	daemon hostout.DaemonStore
	client hostout.IPCClient
}

func NewInteractor(svc *service.HostService, daemon hostout.DaemonStore, client hostout.IPCClient) hostin.Usecase {
	return &Interactor{svc: svc, daemon: daemon, client: client}
}

func (i *Interactor) RunDaemon(ctx context.Context) error {
	return i.svc.RunDaemon(ctx)
}

func (i *Interactor) StartDaemon(ctx context.Context) error {
	return i.svc.StartDaemon(ctx)
}

func (i *Interactor) StopDaemon(ctx context.Context) error {
	return i.svc.StopDaemon(ctx)
}

func (i *Interactor) DaemonStatus(ctx context.Context) (dto.DaemonRuntimeStatusOutput, error) {
	status, err := i.svc.DaemonStatus(ctx)
	if err != nil {
		return dto.DaemonRuntimeStatusOutput{}, err
	}
	return dto.DaemonRuntimeStatusOutput{
		Running:    status.Running,
		PID:        status.PID,
		SocketPath: status.SocketPath,
		Status:     toStatusOutput(status.Status),
	}, nil
}

func toStatusOutput(status hostout.DaemonStatus) dto.DaemonStatusOutput {
	return dto.DaemonStatusOutput{
		PID:        status.PID,
		Monitoring: status.Monitoring,
		AnyActive:  status.AnyActive,
		Enforcing:  status.Enforcing,
		Window:     status.Window,
		Session:    status.Session,
		StartedAt:  status.StartedAt,
	}
}

func (i *Interactor) DaemonLogs(ctx context.Context, tail int) (string, error) {
	return i.svc.DaemonLogs(ctx, tail)
}

func (i *Interactor) SessionStart(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	out, err := i.client.SessionStart(ctx, i.daemon.SocketPath(), input)
	return out, i.mapIPCError(err)
}

func (i *Interactor) SessionPause(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := i.client.SessionPause(ctx, i.daemon.SocketPath())
	return out, i.mapIPCError(err)
}

func (i *Interactor) SessionResume(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := i.client.SessionResume(ctx, i.daemon.SocketPath())
	return out, i.mapIPCError(err)
}

func (i *Interactor) SessionComplete(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := i.client.SessionComplete(ctx, i.daemon.SocketPath())
	return out, i.mapIPCError(err)
}

func (i *Interactor) SessionSkip(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := i.client.SessionSkip(ctx, i.daemon.SocketPath())
	return out, i.mapIPCError(err)
}

func (i *Interactor) SessionStatus(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := i.client.SessionStatus(ctx, i.daemon.SocketPath())
	return out, i.mapIPCError(err)
}

func (i *Interactor) OpenLink(ctx context.Context, raw string) (sessiondto.SessionOutput, error) {
	out, err := i.client.OpenLink(ctx, i.daemon.SocketPath(), raw)
	return out, i.mapIPCError(err)
}

func (i *Interactor) ReapplyNow(ctx context.Context) error {
	return i.mapIPCError(i.client.ReapplyNow(ctx, i.daemon.SocketPath()))
}

// mapIPCError distinguishes "the daemon is not there" from errors the daemon
// itself returned over the wire.
func (i *Interactor) mapIPCError(err error) error {
	if err == nil {
		return nil
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", apperrors.ErrDaemonNotRunning, err)
	}
	return err
}
