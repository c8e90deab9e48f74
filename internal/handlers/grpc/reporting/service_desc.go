package reporting

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "logistics.v1.DeliveryReporting"

	ListDeliveriesMethod   = "/" + ServiceName + "/ListDeliveries"
	GetAnalyticsMethod     = "/" + ServiceName + "/GetAnalytics"
	CompleteDeliveryMethod = "/" + ServiceName + "/CompleteDelivery"
)

// Server - RPC-поверхность отчётности. Сообщения - google.protobuf.Struct,
// поэтому .proto и генерация не нужны.
type Server interface {
	ListDeliveries(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetAnalytics(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CompleteDelivery(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDeliveries", Handler: unaryHandler(ListDeliveriesMethod, Server.ListDeliveries)},
		{MethodName: "GetAnalytics", Handler: unaryHandler(GetAnalyticsMethod, Server.GetAnalytics)},
		{MethodName: "CompleteDelivery", Handler: unaryHandler(CompleteDeliveryMethod, Server.CompleteDelivery)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "logistics/v1/reporting",
}

type unaryMethod func(Server, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, method unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(Server), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(Server), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client - тонкая обёртка над соединением для вызова сервиса.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ListDeliveries(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListDeliveriesMethod, in, opts...)
}

func (c *Client) GetAnalytics(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetAnalyticsMethod, in, opts...)
}

func (c *Client) CompleteDelivery(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CompleteDeliveryMethod, in, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
