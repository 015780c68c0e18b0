package supplyfinder

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Lookup_ServiceName                  = "supplyfinder.Lookup"
	Lookup_InquireRecord_FullMethodName = "/supplyfinder.Lookup/InquireRecord"
)

// LookupClient is the client API for the Lookup service.
type LookupClient interface {
	InquireRecord(ctx context.Context, in *InquireRecordRequest, opts ...grpc.CallOption) (*InquireRecordReply, error)
}

type lookupClient struct {
	cc grpc.ClientConnInterface
}

func NewLookupClient(cc grpc.ClientConnInterface) LookupClient {
	return &lookupClient{cc}
}

func (c *lookupClient) InquireRecord(ctx context.Context, in *InquireRecordRequest, opts ...grpc.CallOption) (*InquireRecordReply, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	out := new(InquireRecordReply)
	if err := c.cc.Invoke(ctx, Lookup_InquireRecord_FullMethodName, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupServer is the server API for the Lookup service.
// Implementations should embed UnimplementedLookupServer.
type LookupServer interface {
	InquireRecord(context.Context, *InquireRecordRequest) (*InquireRecordReply, error)
}

type UnimplementedLookupServer struct{}

func (UnimplementedLookupServer) InquireRecord(context.Context, *InquireRecordRequest) (*InquireRecordReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method InquireRecord not implemented")
}

func RegisterLookupServer(s grpc.ServiceRegistrar, srv LookupServer) {
	s.RegisterService(&Lookup_ServiceDesc, srv)
}

func _Lookup_InquireRecord_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(InquireRecordRequest)
	if err := dec(in); err != nil {
		return nil, decodeError(err)
	}
	if interceptor == nil {
		return srv.(LookupServer).InquireRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Lookup_InquireRecord_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LookupServer).InquireRecord(ctx, req.(*InquireRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Lookup_ServiceDesc is the grpc.ServiceDesc for the Lookup service.
var Lookup_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Lookup_ServiceName,
	HandlerType: (*LookupServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "InquireRecord",
			Handler:    _Lookup_InquireRecord_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "supplyfinder.proto",
}
