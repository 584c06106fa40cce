package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service speaks protobuf well-known types so it needs no generated code:
//
//	service CubeService {
//	  rpc NewGame(google.protobuf.Empty) returns (google.protobuf.StringValue);
//	  rpc Act(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc Gesture(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc State(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	  rpc EndGame(google.protobuf.StringValue) returns (google.protobuf.Empty);
//	  rpc Watch(google.protobuf.StringValue) returns (stream google.protobuf.Struct);
//	}
const (
	serviceName = "cubetris.CubeService"

	newGameMethod = "/" + serviceName + "/NewGame"
	actMethod     = "/" + serviceName + "/Act"
	gestureMethod = "/" + serviceName + "/Gesture"
	stateMethod   = "/" + serviceName + "/State"
	endGameMethod = "/" + serviceName + "/EndGame"
	watchMethod   = "/" + serviceName + "/Watch"
)

type CubeServiceServer interface {
	NewGame(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Act(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Gesture(context.Context, *structpb.Struct) (*structpb.Struct, error)
	State(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	EndGame(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	Watch(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error
}

func RegisterCubeServiceServer(s grpc.ServiceRegistrar, srv CubeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CubeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NewGame",
			Handler: unaryHandler(newGameMethod, func(srv CubeServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return srv.NewGame(ctx, in)
			}),
		},
		{
			MethodName: "Act",
			Handler: unaryHandler(actMethod, func(srv CubeServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return srv.Act(ctx, in)
			}),
		},
		{
			MethodName: "Gesture",
			Handler: unaryHandler(gestureMethod, func(srv CubeServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return srv.Gesture(ctx, in)
			}),
		},
		{
			MethodName: "State",
			Handler: unaryHandler(stateMethod, func(srv CubeServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return srv.State(ctx, in)
			}),
		},
		{
			MethodName: "EndGame",
			Handler: unaryHandler(endGameMethod, func(srv CubeServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return srv.EndGame(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "cubetris.proto",
}

// unaryHandler adapts a typed method to the shape grpc.MethodDesc expects.
func unaryHandler[Req any](fullMethod string, call func(CubeServiceServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CubeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CubeServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	in := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(CubeServiceServer).Watch(in, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

type CubeServiceClient interface {
	NewGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Act(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Gesture(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	State(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Watch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type cubeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCubeServiceClient(cc grpc.ClientConnInterface) CubeServiceClient {
	return &cubeServiceClient{cc: cc}
}

func (c *cubeServiceClient) NewGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, newGameMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cubeServiceClient) Act(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, actMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cubeServiceClient) Gesture(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, gestureMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cubeServiceClient) State(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, stateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cubeServiceClient) EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, endGameMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cubeServiceClient) Watch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], watchMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
