package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	hostout "mindgate/internal/modules/host/port/out"
	restrictionin "mindgate/internal/modules/restriction/port/in"
	schedulein "mindgate/internal/modules/schedule/port/in"
	sessiondto "mindgate/internal/modules/session/dto"
	sessionin "mindgate/internal/modules/session/port/in"
	"mindgate/internal/platform/clock"
	apperrors "mindgate/internal/platform/errors"
)

const (
	daemonStartTimeout  = 5 * time.Second
	defaultLogTailLines = 200
)

type runtimeState struct {
	cancel    context.CancelFunc
	startedAt time.Time
	anyActive bool
	enforcing bool
	evaluated bool
}

// HostService is the long-lived side of the system: it owns the monitor
// loop, the session ticker, and the IPC surface the short-lived commands
// talk to.
type HostService struct {
	homePath        string
	monitorInterval time.Duration
	tickInterval    time.Duration

	schedule    schedulein.Usecase
	restriction restrictionin.Usecase
	sessions    sessionin.Usecase
	daemon      hostout.DaemonStore
	ipcServer   hostout.IPCServer
	ipcClient   hostout.IPCClient
	clock       clock.Clock
	logger      *zap.Logger

	mu      sync.RWMutex
	runtime *runtimeState

	// kick wakes the daemon loop so the session ticker starts the moment a
	// session does, rather than on the next monitor tick.
	kick chan struct{}
}

func NewHostService(
	homePath string,
	monitorInterval time.Duration,
	tickInterval time.Duration,
	schedule schedulein.Usecase,
	restriction restrictionin.Usecase,
	sessions sessionin.Usecase,
	daemon hostout.DaemonStore,
	ipcServer hostout.IPCServer,
	ipcClient hostout.IPCClient,
	clk clock.Clock,
	logger *zap.Logger,
) *HostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostService{
		homePath:        homePath,
		monitorInterval: monitorInterval,
		tickInterval:    tickInterval,
		schedule:        schedule,
		restriction:     restriction,
		sessions:        sessions,
		daemon:          daemon,
		ipcServer:       ipcServer,
		ipcClient:       ipcClient,
		clock:           clk,
		logger:          logger,
		kick:            make(chan struct{}, 1),
	}
}

func (s *HostService) RunDaemon(ctx context.Context) error {
	if err := s.cleanupStaleArtifacts(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.runtime = &runtimeState{cancel: cancel, startedAt: s.clock.Now()}
	s.mu.Unlock()

	if err := s.daemon.WritePID(ctx, os.Getpid()); err != nil {
		cancel()
		return err
	}
	s.logger.Info("daemon started", zap.Int("pid", os.Getpid()))

	ipcErr := make(chan error, 1)
	go func() {
		ipcErr <- s.ipcServer.Serve(runCtx, s.daemon.SocketPath(), s)
	}()

	// First evaluation happens immediately; the monitor interval is a
	// coarse fallback, not the primary trigger.
	s.evaluate(runCtx, false)

	monitor := time.NewTicker(s.monitorInterval)
	defer monitor.Stop()

	var sessionTicker *time.Ticker
	var tickC <-chan time.Time
	syncTicker := func() {
		live := s.sessions.Live()
		if live && sessionTicker == nil {
			sessionTicker = time.NewTicker(s.tickInterval)
			tickC = sessionTicker.C
		}
		if !live && sessionTicker != nil {
			sessionTicker.Stop()
			sessionTicker = nil
			tickC = nil
		}
	}
	defer func() {
		if sessionTicker != nil {
			sessionTicker.Stop()
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			s.cleanupRuntime(context.Background())
			return nil
		case err := <-ipcErr:
			s.cleanupRuntime(context.Background())
			if err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case <-s.kick:
			syncTicker()
		case <-monitor.C:
			s.evaluate(runCtx, false)
			syncTicker()
		case <-tickC:
			s.sessions.Tick(runCtx, s.tickInterval)
			syncTicker()
		}
	}
}

// evaluate re-reads the schedule and flips enforcement on activity edges.
// With force set it pushes the current state regardless of edges, which is
// how ReapplyNow recovers from a drifted enforcement capability.
func (s *HostService) evaluate(ctx context.Context, force bool) {
	status, err := s.schedule.Status(ctx, s.clock.Now())
	if err != nil {
		s.logger.Warn("schedule evaluation failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	rt := s.runtime
	var edge bool
	if rt != nil {
		edge = !rt.evaluated || rt.anyActive != status.AnyActive
		rt.anyActive = status.AnyActive
		rt.evaluated = true
	}
	s.mu.Unlock()
	if rt == nil {
		return
	}
	if !edge && !force {
		return
	}

	if status.AnyActive {
		err = s.restriction.Apply(ctx)
	} else {
		err = s.restriction.Suspend(ctx)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotAuthorized) {
			s.logger.Warn("enforcement capability not granted; will retry on next evaluation")
		} else {
			s.logger.Warn("enforcement update failed", zap.Bool("active", status.AnyActive), zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	rt.enforcing = status.AnyActive
	s.mu.Unlock()
	s.logger.Info("enforcement updated", zap.Bool("active", status.AnyActive))
}

func (s *HostService) wake() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *HostService) StartDaemon(ctx context.Context) error {
	if err := s.cleanupStaleArtifacts(ctx); err != nil {
		return err
	}
	status, err := s.DaemonStatus(ctx)
	if err == nil && status.Running {
		if socketReachable(s.daemon.SocketPath()) {
			return nil
		}
		return fmt.Errorf("daemon process is alive but socket is unavailable")
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.daemon.LogPath()), 0o755); err != nil {
		return fmt.Errorf("create daemon log dir: %w", err)
	}
	if err := os.Remove(s.daemon.SocketPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale daemon socket: %w", err)
	}

	logFile, err := os.OpenFile(s.daemon.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open daemon log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(execPath, "daemon", "run", "--home", s.homePath)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	if err := s.daemon.WritePID(ctx, cmd.Process.Pid); err != nil {
		return err
	}
	_ = cmd.Process.Release()

	if err := waitForSocket(s.daemon.SocketPath(), daemonStartTimeout); err != nil {
		_ = s.daemon.ClearPID(ctx)
		return fmt.Errorf("daemon start: %w", err)
	}
	return nil
}

func (s *HostService) StopDaemon(ctx context.Context) error {
	s.mu.RLock()
	rt := s.runtime
	s.mu.RUnlock()
	if rt != nil && rt.cancel != nil {
		rt.cancel()
		return nil
	}

	if s.ipcClient != nil {
		_ = s.ipcClient.Stop(ctx, s.daemon.SocketPath())
	}

	pid, err := s.daemon.ReadPID(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(s.daemon.SocketPath())
			return nil
		}
		return err
	}
	if pid <= 0 || !processAlive(pid) {
		_ = s.daemon.ClearPID(ctx)
		_ = os.Remove(s.daemon.SocketPath())
		return nil
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("stop daemon pid=%d: %w", pid, err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if processAlive(pid) {
		_ = syscall.Kill(pid, syscall.SIGKILL)
	}
	if err := s.daemon.ClearPID(ctx); err != nil {
		return err
	}
	_ = os.Remove(s.daemon.SocketPath())
	return nil
}

func (s *HostService) DaemonStatus(ctx context.Context) (hostout.DaemonRuntimeStatus, error) {
	out := hostout.DaemonRuntimeStatus{SocketPath: s.daemon.SocketPath()}

	pid, err := s.daemon.ReadPID(ctx)
	if err == nil {
		out.PID = pid
		out.Running = processAlive(pid)
	}

	if out.Running && s.ipcClient != nil {
		status, statusErr := s.ipcClient.Status(ctx, s.daemon.SocketPath())
		if statusErr == nil {
			out.Status = status
		}
	}
	return out, nil
}

func (s *HostService) DaemonLogs(_ context.Context, tail int) (string, error) {
	if tail <= 0 {
		tail = defaultLogTailLines
	}
	file, err := os.Open(s.daemon.LogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open daemon log: %w", err)
	}
	defer file.Close()

	lines := make([]string, 0, tail)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) < tail {
			lines = append(lines, line)
			continue
		}
		copy(lines, lines[1:])
		lines[len(lines)-1] = line
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("scan daemon log: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

// IPC handler side. These run inside the daemon process.

func (s *HostService) SessionStart(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	out, err := s.sessions.Start(ctx, input)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	s.wake()
	return out, nil
}

func (s *HostService) SessionPause(ctx context.Context) (sessiondto.SessionOutput, error) {
	return s.sessions.Pause(ctx)
}

func (s *HostService) SessionResume(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := s.sessions.Resume(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	s.wake()
	return out, nil
}

func (s *HostService) SessionComplete(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := s.sessions.Complete(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	s.wake()
	return out, nil
}

func (s *HostService) SessionSkip(ctx context.Context) (sessiondto.SessionOutput, error) {
	out, err := s.sessions.Skip(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	s.wake()
	return out, nil
}

func (s *HostService) SessionStatus(ctx context.Context) (sessiondto.SessionOutput, error) {
	return s.sessions.Status(ctx)
}

func (s *HostService) OpenLink(ctx context.Context, raw string) (sessiondto.SessionOutput, error) {
	out, err := s.sessions.OpenLink(ctx, raw)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	s.wake()
	return out, nil
}

func (s *HostService) ReapplyNow(ctx context.Context) error {
	s.evaluate(ctx, true)
	return nil
}

func (s *HostService) Status(ctx context.Context) (hostout.DaemonStatus, error) {
	status, err := s.schedule.Status(ctx, s.clock.Now())
	if err != nil {
		return hostout.DaemonStatus{}, err
	}
	session, err := s.sessions.Status(ctx)
	if err != nil {
		return hostout.DaemonStatus{}, err
	}

	s.mu.RLock()
	rt := s.runtime
	out := hostout.DaemonStatus{
		PID:        os.Getpid(),
		Monitoring: status.Monitoring,
		AnyActive:  status.AnyActive,
		Window:     status.Window,
		Session:    session,
	}
	if rt != nil {
		out.Enforcing = rt.enforcing
		out.StartedAt = rt.startedAt
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *HostService) Stop(context.Context) error {
	s.mu.RLock()
	rt := s.runtime
	s.mu.RUnlock()
	if rt != nil && rt.cancel != nil {
		rt.cancel()
	}
	return nil
}

func (s *HostService) cleanupRuntime(ctx context.Context) {
	s.mu.Lock()
	rt := s.runtime
	s.runtime = nil
	s.mu.Unlock()
	if rt != nil && rt.cancel != nil {
		rt.cancel()
	}
	_ = s.daemon.ClearPID(ctx)
	_ = os.Remove(s.daemon.SocketPath())
	s.logger.Info("daemon stopped")
}

func (s *HostService) cleanupStaleArtifacts(ctx context.Context) error {
	pid, err := s.daemon.ReadPID(ctx)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else if pid > 0 && !processAlive(pid) {
		_ = s.daemon.ClearPID(ctx)
		_ = os.Remove(s.daemon.SocketPath())
	}

	if _, statErr := os.Stat(s.daemon.SocketPath()); statErr == nil {
		if !socketReachable(s.daemon.SocketPath()) {
			if removeErr := os.Remove(s.daemon.SocketPath()); removeErr != nil && !os.IsNotExist(removeErr) {
				return fmt.Errorf("remove stale daemon socket: %w", removeErr)
			}
		}
	}
	return nil
}

func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if socketReachable(path) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("daemon socket not ready: %s", path)
}

func socketReachable(path string) bool {
	conn, err := net.DialTimeout("unix", path, 150*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
