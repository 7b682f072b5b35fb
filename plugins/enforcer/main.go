package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-plugin"

	enforcerrpc "mindgate/internal/modules/restriction/adapter/out/rpc"
)

// Reference enforcement backend. It has no real platform hooks; it records
// the enforced target set in a JSON file so the host side can be exercised
// end to end, and reports itself authorized.
type server struct {
	statePath string
}

type enforcementState struct {
	Targets   []enforcerrpc.Target `json:"targets"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func (s *server) Apply(_ context.Context, in *enforcerrpc.ApplyRequest) (*enforcerrpc.Empty, error) {
	state := enforcementState{Targets: in.Targets, UpdatedAt: time.Now()}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode enforcement state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.statePath), 0o755); err != nil {
		return nil, fmt.Errorf("create enforcement dir: %w", err)
	}
	if err := os.WriteFile(s.statePath, payload, 0o644); err != nil {
		return nil, fmt.Errorf("write enforcement state: %w", err)
	}
	return &enforcerrpc.Empty{}, nil
}

func (s *server) Clear(_ context.Context, _ *enforcerrpc.Empty) (*enforcerrpc.Empty, error) {
	if err := os.Remove(s.statePath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove enforcement state: %w", err)
	}
	return &enforcerrpc.Empty{}, nil
}

func (s *server) Status(context.Context, *enforcerrpc.Empty) (*enforcerrpc.StatusResponse, error) {
	return &enforcerrpc.StatusResponse{Authorized: true, Detail: "reference backend"}, nil
}

func main() {
	statePath := os.Getenv("MINDGATE_ENFORCER_STATE")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		statePath = filepath.Join(home, ".mindgate", "state", "enforced.json")
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: enforcerrpc.HandshakeConfig,
		Plugins:         enforcerrpc.PluginMap(&server{statePath: statePath}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
