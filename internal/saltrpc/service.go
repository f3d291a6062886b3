// Package saltrpc describes the gRPC face of the salt service. Messages are
// the protobuf well-known wrapper types, so no generated code is needed:
// GetSalt takes the raw JWT as a StringValue and returns the salt the same way.
package saltrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName       = "zklogin.salt.SaltService"
	GetSaltFullMethod = "/" + ServiceName + "/GetSalt"
	PingFullMethod    = "/" + ServiceName + "/Ping"
)

type SaltServiceServer interface {
	GetSalt(ctx context.Context, jwt *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Ping(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
}

func RegisterSaltServiceServer(s grpc.ServiceRegistrar, srv SaltServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func getSaltHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SaltServiceServer).GetSalt(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetSaltFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SaltServiceServer).GetSalt(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SaltServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SaltServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SaltServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSalt", Handler: getSaltHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salt.proto",
}

type SaltServiceClient interface {
	GetSalt(ctx context.Context, jwt *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type saltServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSaltServiceClient(cc grpc.ClientConnInterface) SaltServiceClient {
	return &saltServiceClient{cc: cc}
}

func (c *saltServiceClient) GetSalt(ctx context.Context, jwt *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetSaltFullMethod, jwt, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *saltServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, PingFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
