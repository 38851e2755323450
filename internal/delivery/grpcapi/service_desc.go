package grpcapi

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "pricing.PricingService"

type PricingServiceServer interface {
	CalculatePrice(context.Context, *CalculatePriceRequest) (*CalculatePriceResponse, error)
	CalculateMultiRoomPrice(context.Context, *CalculateMultiRoomPriceRequest) (*CalculateMultiRoomPriceResponse, error)
	CalculateTierPricing(context.Context, *CalculateTierPricingRequest) (*CalculateTierPricingResponse, error)
	InvalidateCache(context.Context, *InvalidateCacheRequest) (*InvalidateCacheResponse, error)
}

func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&PricingServiceDesc, srv)
}

// unaryHandler adapts one typed server method to grpc's untyped handler
// signature.
func unaryHandler[Req any, Resp any](method string, call func(PricingServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PricingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PricingServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var PricingServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CalculatePrice", PricingServiceServer.CalculatePrice),
		unaryHandler("CalculateMultiRoomPrice", PricingServiceServer.CalculateMultiRoomPrice),
		unaryHandler("CalculateTierPricing", PricingServiceServer.CalculateTierPricing),
		unaryHandler("InvalidateCache", PricingServiceServer.InvalidateCache),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing.proto",
}

// PricingClient calls the service over a connection using the JSON codec.
type PricingClient struct {
	cc grpc.ClientConnInterface
}

func NewPricingClient(cc grpc.ClientConnInterface) *PricingClient {
	return &PricingClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PricingClient) CalculatePrice(ctx context.Context, in *CalculatePriceRequest, opts ...grpc.CallOption) (*CalculatePriceResponse, error) {
	return invoke[CalculatePriceResponse](ctx, c.cc, "CalculatePrice", in, opts...)
}

func (c *PricingClient) CalculateMultiRoomPrice(ctx context.Context, in *CalculateMultiRoomPriceRequest, opts ...grpc.CallOption) (*CalculateMultiRoomPriceResponse, error) {
	return invoke[CalculateMultiRoomPriceResponse](ctx, c.cc, "CalculateMultiRoomPrice", in, opts...)
}

func (c *PricingClient) CalculateTierPricing(ctx context.Context, in *CalculateTierPricingRequest, opts ...grpc.CallOption) (*CalculateTierPricingResponse, error) {
	return invoke[CalculateTierPricingResponse](ctx, c.cc, "CalculateTierPricing", in, opts...)
}

func (c *PricingClient) InvalidateCache(ctx context.Context, in *InvalidateCacheRequest, opts ...grpc.CallOption) (*InvalidateCacheResponse, error) {
	return invoke[InvalidateCacheResponse](ctx, c.cc, "InvalidateCache", in, opts...)
}
