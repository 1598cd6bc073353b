package cachepb

import (
	"context"

	"google.golang.org/grpc"
)

// CacheServer is the interface a gRPC server must implement to serve the
// Cache service described in cache.proto. It is hand-written in the shape
// protoc-gen-go-grpc would emit, since protobuf code generation itself is
// out of scope (spec.md §1); nothing downstream cares which produced it.
type CacheServer interface {
	Get(context.Context, *GetRequest) (*GetReply, error)
	Set(context.Context, *SetRequest) (*SetReply, error)
	Delete(context.Context, *DeleteRequest) (*DeleteReply, error)

	InternalGet(context.Context, *GetRequest) (*GetReply, error)
	InternalSet(context.Context, *SetRequest) (*SetReply, error)
	InternalDelete(context.Context, *DeleteRequest) (*DeleteReply, error)
	Replicate(context.Context, *ReplicateRequest) (*Ack, error)
}

// CacheClient is the interface generated clients (and hand-rolled ones)
// implement to call the Cache service.
type CacheClient interface {
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetReply, error)
	Set(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetReply, error)
	Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteReply, error)

	InternalGet(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetReply, error)
	InternalSet(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetReply, error)
	InternalDelete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteReply, error)
	Replicate(ctx context.Context, in *ReplicateRequest, opts ...grpc.CallOption) (*Ack, error)
}

type cacheClient struct {
	cc grpc.ClientConnInterface
}

// NewCacheClient wraps a *grpc.ClientConn (or anything satisfying
// grpc.ClientConnInterface) with typed Cache RPC methods.
func NewCacheClient(cc grpc.ClientConnInterface) CacheClient {
	return &cacheClient{cc: cc}
}

func (c *cacheClient) call(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append(opts, grpc.CallContentSubtype(codecName))
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *cacheClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetReply, error) {
	out := new(GetReply)
	if err := c.call(ctx, "/kvring.Cache/Get", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cacheClient) Set(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetReply, error) {
	out := new(SetReply)
	if err := c.call(ctx, "/kvring.Cache/Set", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cacheClient) Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteReply, error) {
	out := new(DeleteReply)
	if err := c.call(ctx, "/kvring.Cache/Delete", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cacheClient) InternalGet(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetReply, error) {
	out := new(GetReply)
	if err := c.call(ctx, "/kvring.Cache/InternalGet", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cacheClient) InternalSet(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetReply, error) {
	out := new(SetReply)
	if err := c.call(ctx, "/kvring.Cache/InternalSet", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cacheClient) InternalDelete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteReply, error) {
	out := new(DeleteReply)
	if err := c.call(ctx, "/kvring.Cache/InternalDelete", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cacheClient) Replicate(ctx context.Context, in *ReplicateRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.call(ctx, "/kvring.Cache/Replicate", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterCacheServer registers srv as the handler for the Cache service on
// s (typically a *grpc.Server).
func RegisterCacheServer(s grpc.ServiceRegistrar, srv CacheServer) {
	s.RegisterService(&Cache_ServiceDesc, srv)
}

func _Cache_Get_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/Get"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Cache_Set_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).Set(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/Set"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).Set(ctx, req.(*SetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Cache_Delete_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/Delete"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).Delete(ctx, req.(*DeleteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Cache_InternalGet_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).InternalGet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/InternalGet"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).InternalGet(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Cache_InternalSet_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).InternalSet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/InternalSet"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).InternalSet(ctx, req.(*SetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Cache_InternalDelete_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).InternalDelete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/InternalDelete"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).InternalDelete(ctx, req.(*DeleteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Cache_Replicate_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReplicateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CacheServer).Replicate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kvring.Cache/Replicate"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CacheServer).Replicate(ctx, req.(*ReplicateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Cache_ServiceDesc is the grpc.ServiceDesc for the Cache service, in the
// shape protoc-gen-go-grpc emits.
var Cache_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "kvring.Cache",
	HandlerType: (*CacheServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Get", Handler: _Cache_Get_Handler},
		{MethodName: "Set", Handler: _Cache_Set_Handler},
		{MethodName: "Delete", Handler: _Cache_Delete_Handler},
		{MethodName: "InternalGet", Handler: _Cache_InternalGet_Handler},
		{MethodName: "InternalSet", Handler: _Cache_InternalSet_Handler},
		{MethodName: "InternalDelete", Handler: _Cache_InternalDelete_Handler},
		{MethodName: "Replicate", Handler: _Cache_Replicate_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cache.proto",
}
