package kvring

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kvring/kvring/cachepb"
)

// rpcServer implements cachepb.CacheServer, wiring both the client-facing
// surface (Get/Set/Delete) and the peer-facing surface (InternalGet/
// InternalSet/InternalDelete/Replicate) to a coordinator (spec.md §4.4).
type rpcServer struct {
	coordinator *coordinator
}

func newRPCServer(c *coordinator) *rpcServer {
	return &rpcServer{coordinator: c}
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, ErrDurabilityFailure):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

// Get serves the client-facing surface: the coordinator forwards to the
// owner transparently if this node isn't it. The call is bounded by the
// node's overall client-facing deadline (spec.md §5: forward hop + durable
// store + replication wait together).
func (s *rpcServer) Get(ctx context.Context, req *cachepb.GetRequest) (*cachepb.GetReply, error) {
	ctx, cancel := context.WithTimeout(ctx, s.coordinator.options.clientDeadline)
	defer cancel()

	value, err := s.coordinator.Get(ctx, req.Key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &cachepb.GetReply{Found: false}, nil
		}
		return nil, toStatus(err)
	}
	return &cachepb.GetReply{Found: true, Value: value}, nil
}

// Set serves the client-facing surface.
func (s *rpcServer) Set(ctx context.Context, req *cachepb.SetRequest) (*cachepb.SetReply, error) {
	ctx, cancel := context.WithTimeout(ctx, s.coordinator.options.clientDeadline)
	defer cancel()

	if err := s.coordinator.Set(ctx, req.Key, req.Value); err != nil {
		return &cachepb.SetReply{Ok: false, Err: err.Error()}, nil
	}
	return &cachepb.SetReply{Ok: true}, nil
}

// Delete serves the client-facing surface.
func (s *rpcServer) Delete(ctx context.Context, req *cachepb.DeleteRequest) (*cachepb.DeleteReply, error) {
	ctx, cancel := context.WithTimeout(ctx, s.coordinator.options.clientDeadline)
	defer cancel()

	if err := s.coordinator.Delete(ctx, req.Key); err != nil {
		return &cachepb.DeleteReply{Ok: false}, toStatus(err)
	}
	return &cachepb.DeleteReply{Ok: true}, nil
}

// InternalGet serves the peer surface: a forwarded or direct owner read.
// It never re-forwards — a peer call landing on a non-owner is a protocol
// violation (spec.md §4.3's anti-loop rule) and is rejected as invalid.
func (s *rpcServer) InternalGet(ctx context.Context, req *cachepb.GetRequest) (*cachepb.GetReply, error) {
	if !s.coordinator.isSelf(s.coordinator.ring.Owner(req.Key)) {
		return nil, toStatus(ErrInvalid)
	}
	value, err := s.coordinator.ownerGet(ctx, req.Key)
	if err != nil {
		return &cachepb.GetReply{Found: false}, nil
	}
	return &cachepb.GetReply{Found: true, Value: value}, nil
}

// InternalSet serves the peer surface.
func (s *rpcServer) InternalSet(ctx context.Context, req *cachepb.SetRequest) (*cachepb.SetReply, error) {
	if !s.coordinator.isSelf(s.coordinator.ring.Owner(req.Key)) {
		return &cachepb.SetReply{Ok: false, Err: ErrInvalid.Error()}, nil
	}
	if err := s.coordinator.ownerSet(ctx, req.Key, req.Value); err != nil {
		return &cachepb.SetReply{Ok: false, Err: err.Error()}, nil
	}
	return &cachepb.SetReply{Ok: true}, nil
}

// InternalDelete serves the peer surface.
func (s *rpcServer) InternalDelete(ctx context.Context, req *cachepb.DeleteRequest) (*cachepb.DeleteReply, error) {
	if !s.coordinator.isSelf(s.coordinator.ring.Owner(req.Key)) {
		return nil, toStatus(ErrInvalid)
	}
	if err := s.coordinator.ownerDelete(ctx, req.Key); err != nil {
		return &cachepb.DeleteReply{Ok: false}, toStatus(err)
	}
	return &cachepb.DeleteReply{Ok: true}, nil
}

// Replicate applies a replicated write directly to the Local Store. It
// never writes through the Durable-Store Adapter and never fans out
// further (spec.md §4.3).
func (s *rpcServer) Replicate(ctx context.Context, req *cachepb.ReplicateRequest) (*cachepb.Ack, error) {
	s.coordinator.ApplyReplicated(req.Op, req.Key, req.Value)
	return &cachepb.Ack{Ok: true}, nil
}
