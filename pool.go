package kvring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kvring/kvring/cachepb"
)

// pool is the Replica Client Pool (spec.md §4.5): a persistent
// grpc.ClientConn per peer, reused across every forwarded or replicated
// call. A peer that has never been dialed successfully is unavailable
// immediately — the pool never blocks a request waiting on a connection.
type pool struct {
	mu      sync.RWMutex
	conns   map[string]*grpc.ClientConn
	clients map[string]cachepb.CacheClient
	logger  *slog.Logger
}

// newPool returns a new pool. peers is the full set of node addresses
// the pool should eagerly dial; a peer that fails to dial is retried
// lazily on the next call against it.
func newPool(peers []string, logger *slog.Logger) *pool {
	p := &pool{
		conns:   make(map[string]*grpc.ClientConn),
		clients: make(map[string]cachepb.CacheClient),
		logger:  logger,
	}
	for _, peer := range peers {
		p.dial(peer)
	}
	return p
}

func (p *pool) dial(peer string) cachepb.CacheClient {
	conn, err := grpc.NewClient(peer, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("pool: failed to dial peer", "peer", peer, "error", err)
		}
		return nil
	}

	client := cachepb.NewCacheClient(conn)

	p.mu.Lock()
	p.conns[peer] = conn
	p.clients[peer] = client
	p.mu.Unlock()

	return client
}

// client returns the CacheClient for peer, dialing it lazily if the pool
// has not seen it before or its previous dial failed.
func (p *pool) client(peer string) cachepb.CacheClient {
	p.mu.RLock()
	c, ok := p.clients[peer]
	p.mu.RUnlock()
	if ok {
		return c
	}
	return p.dial(peer)
}

// Get forwards a client-surface GET to peer's owner-facing RPC, bounded by
// deadline (spec.md §4.5: every call the pool makes carries a deadline).
func (p *pool) Get(ctx context.Context, peer string, req *cachepb.GetRequest, deadline time.Duration) (*cachepb.GetReply, error) {
	c := p.client(peer)
	if c == nil {
		return nil, fmt.Errorf("%w: no connection to %s", ErrUnavailable, peer)
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	return c.InternalGet(ctx, req)
}

// Set forwards a client-surface SET to peer's owner-facing RPC, bounded by
// deadline.
func (p *pool) Set(ctx context.Context, peer string, req *cachepb.SetRequest, deadline time.Duration) (*cachepb.SetReply, error) {
	c := p.client(peer)
	if c == nil {
		return nil, fmt.Errorf("%w: no connection to %s", ErrUnavailable, peer)
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	return c.InternalSet(ctx, req)
}

// Delete forwards a client-surface DELETE to peer's owner-facing RPC,
// bounded by deadline.
func (p *pool) Delete(ctx context.Context, peer string, req *cachepb.DeleteRequest, deadline time.Duration) (*cachepb.DeleteReply, error) {
	c := p.client(peer)
	if c == nil {
		return nil, fmt.Errorf("%w: no connection to %s", ErrUnavailable, peer)
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	return c.InternalDelete(ctx, req)
}

// Replicate fans a write out to a successor, bounded by deadline. Errors
// are the caller's responsibility to log-and-ignore (spec.md §4.3: best
// effort, never fails the client-facing write).
func (p *pool) Replicate(ctx context.Context, peer string, req *cachepb.ReplicateRequest, deadline time.Duration) error {
	c := p.client(peer)
	if c == nil {
		return fmt.Errorf("%w: no connection to %s", ErrUnavailable, peer)
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	_, err := c.Replicate(ctx, req)
	return err
}

// Close tears down every held connection.
func (p *pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for peer, conn := range p.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("pool: closing %s: %w", peer, err)
		}
	}
	return firstErr
}
