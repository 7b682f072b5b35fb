package out

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"time"

	hostout "mindgate/internal/modules/host/port/out"
	sessiondto "mindgate/internal/modules/session/dto"
)

type JSONRPCServer struct{}

type JSONRPCClient struct{}

func NewJSONRPCServer() hostout.IPCServer {
	return &JSONRPCServer{}
}

func NewJSONRPCClient() hostout.IPCClient {
	return &JSONRPCClient{}
}

type rpcHandler struct {
	h hostout.IPCHandler
}

type SessionStartReq struct {
	IntentionID  string
	TargetID     string
	FromCategory bool
}

type OpenLinkReq struct {
	URL string
}

type StatusResp struct {
	Status hostout.DaemonStatus
}

type Empty struct{}

func (s *rpcHandler) SessionStart(req SessionStartReq, resp *sessiondto.SessionOutput) error {
	out, err := s.h.SessionStart(context.Background(), sessiondto.StartInput{
		IntentionID:  req.IntentionID,
		TargetID:     req.TargetID,
		FromCategory: req.FromCategory,
	})
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) SessionPause(_ Empty, resp *sessiondto.SessionOutput) error {
	out, err := s.h.SessionPause(context.Background())
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) SessionResume(_ Empty, resp *sessiondto.SessionOutput) error {
	out, err := s.h.SessionResume(context.Background())
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) SessionComplete(_ Empty, resp *sessiondto.SessionOutput) error {
	out, err := s.h.SessionComplete(context.Background())
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) SessionSkip(_ Empty, resp *sessiondto.SessionOutput) error {
	out, err := s.h.SessionSkip(context.Background())
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) SessionStatus(_ Empty, resp *sessiondto.SessionOutput) error {
	out, err := s.h.SessionStatus(context.Background())
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) OpenLink(req OpenLinkReq, resp *sessiondto.SessionOutput) error {
	out, err := s.h.OpenLink(context.Background(), req.URL)
	if err != nil {
		return err
	}
	*resp = out
	return nil
}

func (s *rpcHandler) ReapplyNow(_ Empty, _ *Empty) error {
	return s.h.ReapplyNow(context.Background())
}

func (s *rpcHandler) Status(_ Empty, resp *StatusResp) error {
	status, err := s.h.Status(context.Background())
	if err != nil {
		return err
	}
	resp.Status = status
	return nil
}

func (s *rpcHandler) Stop(_ Empty, _ *Empty) error {
	return s.h.Stop(context.Background())
}

func (s *JSONRPCServer) Serve(ctx context.Context, socketPath string, handler hostout.IPCHandler) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return fmt.Errorf("create ipc dir: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale ipc socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen ipc socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod ipc socket: %w", err)
	}
	defer ln.Close()

	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName("Host", &rpcHandler{h: handler}); err != nil {
		return fmt.Errorf("register ipc handler: %w", err)
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		go rpcSrv.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

func (c *JSONRPCClient) SessionStart(ctx context.Context, socketPath string, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	defer client.Close()
	resp := sessiondto.SessionOutput{}
	if err := client.Call("Host.SessionStart", SessionStartReq{
		IntentionID:  input.IntentionID,
		TargetID:     input.TargetID,
		FromCategory: input.FromCategory,
	}, &resp); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) SessionPause(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error) {
	return c.callSession(ctx, socketPath, "Host.SessionPause")
}

func (c *JSONRPCClient) SessionResume(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error) {
	return c.callSession(ctx, socketPath, "Host.SessionResume")
}

func (c *JSONRPCClient) SessionComplete(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error) {
	return c.callSession(ctx, socketPath, "Host.SessionComplete")
}

func (c *JSONRPCClient) SessionSkip(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error) {
	return c.callSession(ctx, socketPath, "Host.SessionSkip")
}

func (c *JSONRPCClient) SessionStatus(ctx context.Context, socketPath string) (sessiondto.SessionOutput, error) {
	return c.callSession(ctx, socketPath, "Host.SessionStatus")
}

func (c *JSONRPCClient) callSession(ctx context.Context, socketPath, method string) (sessiondto.SessionOutput, error) {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	defer client.Close()
	resp := sessiondto.SessionOutput{}
	if err := client.Call(method, Empty{}, &resp); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) OpenLink(ctx context.Context, socketPath string, raw string) (sessiondto.SessionOutput, error) {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	defer client.Close()
	resp := sessiondto.SessionOutput{}
	if err := client.Call("Host.OpenLink", OpenLinkReq{URL: raw}, &resp); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) ReapplyNow(ctx context.Context, socketPath string) error {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Call("Host.ReapplyNow", Empty{}, &Empty{})
}

func (c *JSONRPCClient) Status(ctx context.Context, socketPath string) (hostout.DaemonStatus, error) {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return hostout.DaemonStatus{}, err
	}
	defer client.Close()
	resp := StatusResp{}
	if err := client.Call("Host.Status", Empty{}, &resp); err != nil {
		return hostout.DaemonStatus{}, err
	}
	return resp.Status, nil
}

func (c *JSONRPCClient) Stop(ctx context.Context, socketPath string) error {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Call("Host.Stop", Empty{}, &Empty{})
}

func dialClient(ctx context.Context, socketPath string) (*rpc.Client, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))
	client := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return client, nil
}
