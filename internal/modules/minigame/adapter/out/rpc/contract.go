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
	PluginMapKey     = "healthquest"
	serviceName      = "healthquest.plugin.v1.MiniGame"
	jsonCodecName    = "json"
	methodGetMeta    = "/" + serviceName + "/GetMetadata"
	methodListGames  = "/" + serviceName + "/ListGames"
	methodPlay       = "/" + serviceName + "/Play"
	methodPrepareTTY = "/" + serviceName + "/PrepareTTY"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "HEALTHQUEST_PLUGIN",
	MagicCookieValue: "healthquest",
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

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type GameDescriptor struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Kind           string `json:"kind"`
	DefaultMinutes int32  `json:"default_minutes"`
	TimeoutMS      int32  `json:"timeout_ms"`
}

type ListGamesResponse struct {
	Games []GameDescriptor `json:"games"`
}

type PlayContext struct {
	DataDir   string            `json:"data_dir"`
	Player    string            `json:"player"`
	SessionID string            `json:"session_id"`
	Cwd       string            `json:"cwd"`
	Env       map[string]string `json:"env"`
}

type PlayRequest struct {
	GameID    string      `json:"game_id"`
	InputJSON string      `json:"input_json"`
	Context   PlayContext `json:"context"`
}

type PlayResponse struct {
	Kind       string `json:"kind"`
	Score      int32  `json:"score"`
	Minutes    int32  `json:"minutes"`
	Stdout     string `json:"stdout"`
	OutputJSON string `json:"output_json"`
	ExitCode   int32  `json:"exit_code"`
}

type PrepareTTYRequest struct {
	GameID    string      `json:"game_id"`
	InputJSON string      `json:"input_json"`
	Context   PlayContext `json:"context"`
}

type PrepareTTYResponse struct {
	Argv []string          `json:"argv"`
	Cwd  string            `json:"cwd"`
	Env  map[string]string `json:"env"`
}

type MiniGameServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListGames(ctx context.Context, in *Empty) (*ListGamesResponse, error)
	Play(ctx context.Context, in *PlayRequest) (*PlayResponse, error)
	PrepareTTY(ctx context.Context, in *PrepareTTYRequest) (*PrepareTTYResponse, error)
}

type MiniGameClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListGames(ctx context.Context) (*ListGamesResponse, error)
	Play(ctx context.Context, in *PlayRequest) (*PlayResponse, error)
	PrepareTTY(ctx context.Context, in *PrepareTTYRequest) (*PrepareTTYResponse, error)
}

type miniGameClient struct {
	conn *grpc.ClientConn
}

func NewMiniGameClient(conn *grpc.ClientConn) MiniGameClient {
	return &miniGameClient{conn: conn}
}

func (c *miniGameClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMeta, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *miniGameClient) ListGames(ctx context.Context) (*ListGamesResponse, error) {
	out := &ListGamesResponse{}
	if err := c.conn.Invoke(ctx, methodListGames, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *miniGameClient) Play(ctx context.Context, in *PlayRequest) (*PlayResponse, error) {
	out := &PlayResponse{}
	if err := c.conn.Invoke(ctx, methodPlay, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *miniGameClient) PrepareTTY(ctx context.Context, in *PrepareTTYRequest) (*PrepareTTYResponse, error) {
	out := &PrepareTTYResponse{}
	if err := c.conn.Invoke(ctx, methodPrepareTTY, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterMiniGameServer(server grpc.ServiceRegistrar, impl MiniGameServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*MiniGameServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMeta}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListGames",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListGames(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListGames}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListGames(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Play",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &PlayRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Play(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodPlay}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*PlayRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Play(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "PrepareTTY",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &PrepareTTYRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.PrepareTTY(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodPrepareTTY}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*PrepareTTYRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.PrepareTTY(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/minigame-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl MiniGameServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterMiniGameServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewMiniGameClient(conn), nil
}

func PluginMap(impl MiniGameServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
