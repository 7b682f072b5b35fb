package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"mindgate/internal/modules/restriction/domain"
	enforcerrpc "mindgate/internal/modules/restriction/adapter/out/rpc"
	restrictionout "mindgate/internal/modules/restriction/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginEnforcer drives an enforcement backend shipped as a separate binary
// over go-plugin's gRPC transport. Each call launches, talks, and kills the
// plugin; the enforcement capability itself stays out of this process.
type PluginEnforcer struct {
	binary string
}

func NewPluginEnforcer(binary string) restrictionout.Enforcer {
	return &PluginEnforcer{binary: binary}
}

func (e *PluginEnforcer) Apply(ctx context.Context, targets []domain.EnforcedTarget) error {
	client, closeFn, err := e.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()

	request := &enforcerrpc.ApplyRequest{Targets: make([]enforcerrpc.Target, 0, len(targets))}
	for _, t := range targets {
		request.Targets = append(request.Targets, enforcerrpc.Target{
			ID:          t.ID,
			Kind:        string(t.Kind),
			DisplayName: t.DisplayName,
			IntentionID: t.IntentionID,
		})
	}
	if err := client.Apply(callCtx, request); err != nil {
		return fmt.Errorf("enforcer apply: %w", err)
	}
	return nil
}

func (e *PluginEnforcer) Clear(ctx context.Context) error {
	client, closeFn, err := e.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if err := client.Clear(callCtx); err != nil {
		return fmt.Errorf("enforcer clear: %w", err)
	}
	return nil
}

func (e *PluginEnforcer) Authorized(ctx context.Context) (bool, error) {
	client, closeFn, err := e.connect()
	if err != nil {
		return false, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	status, err := client.Status(callCtx)
	if err != nil {
		return false, fmt.Errorf("enforcer status: %w", err)
	}
	return status.Authorized, nil
}

func (e *PluginEnforcer) connect() (enforcerrpc.EnforcerClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  enforcerrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          enforcerrpc.PluginMap(nil),
		Cmd:              exec.Command(e.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start enforcer plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(enforcerrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense enforcer plugin: %w", err)
	}
	typed, ok := raw.(enforcerrpc.EnforcerClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("enforcer rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
