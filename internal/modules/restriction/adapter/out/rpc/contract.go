package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey  = "enforcer"
	serviceName   = "mindgate.enforcer.v1.Enforcer"
	jsonCodecName = "json"
	methodApply   = "/" + serviceName + "/Apply"
	methodClear   = "/" + serviceName + "/Clear"
	methodStatus  = "/" + serviceName + "/Status"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "MINDGATE_ENFORCER",
	MagicCookieValue: "mindgate",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Target struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name,omitempty"`
	IntentionID string `json:"intention_id,omitempty"`
}

type ApplyRequest struct {
	Targets []Target `json:"targets"`
}

type StatusResponse struct {
	Authorized bool   `json:"authorized"`
	Detail     string `json:"detail,omitempty"`
}

type EnforcerServer interface {
	Apply(ctx context.Context, in *ApplyRequest) (*Empty, error)
	Clear(ctx context.Context, in *Empty) (*Empty, error)
	Status(ctx context.Context, in *Empty) (*StatusResponse, error)
}

type EnforcerClient interface {
	Apply(ctx context.Context, in *ApplyRequest) error
	Clear(ctx context.Context) error
	Status(ctx context.Context) (*StatusResponse, error)
}

type enforcerClient struct {
	conn *grpc.ClientConn
}

func NewEnforcerClient(conn *grpc.ClientConn) EnforcerClient {
	return &enforcerClient{conn: conn}
}

func (c *enforcerClient) Apply(ctx context.Context, in *ApplyRequest) error {
	return c.conn.Invoke(ctx, methodApply, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *enforcerClient) Clear(ctx context.Context) error {
	return c.conn.Invoke(ctx, methodClear, &Empty{}, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *enforcerClient) Status(ctx context.Context) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := c.conn.Invoke(ctx, methodStatus, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEnforcerServer(server grpc.ServiceRegistrar, impl EnforcerServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EnforcerServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Apply",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ApplyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Apply(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodApply}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ApplyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Apply(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Clear",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Clear(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodClear}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Clear(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Status",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Status(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodStatus}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Status(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/enforcer-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EnforcerServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEnforcerServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEnforcerClient(conn), nil
}

func PluginMap(impl EnforcerServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
