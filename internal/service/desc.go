package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "upgradepath.v1.UpgradePath"

	computeMethod = "/" + ServiceName + "/Compute"
)

// UpgradePathServer is the server API of the UpgradePath service. Messages
// are google.protobuf.Struct values; see Request and Response for their shape.
type UpgradePathServer interface {
	Compute(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the UpgradePath service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UpgradePathServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Compute",
			Handler:    computeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "upgradepath/v1/upgradepath.proto",
}

// RegisterUpgradePathServer registers srv on s.
func RegisterUpgradePathServer(s grpc.ServiceRegistrar, srv UpgradePathServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func computeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UpgradePathServer).Compute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: computeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UpgradePathServer).Compute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the UpgradePath service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Compute asks the server for the upgrade path of one package.
func (c *Client) Compute(ctx context.Context, req Request, opts ...grpc.CallOption) (*Response, error) {
	in, err := req.Struct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, computeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return ResponseFromStruct(out), nil
}
