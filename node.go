package kvring

import (
	"context"
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"

	"github.com/kvring/kvring/cachepb"
	"github.com/kvring/kvring/durable"
	"github.com/kvring/kvring/legacy"
)

// Node wires the Ring, Local Store, Coordinator, RPC Server, Replica
// Client Pool, Durable-Store Adapter, and Legacy-Source Adapter together
// into a single running cluster member (spec.md §3, §4).
type Node struct {
	selfID   string
	ring     *Ring
	store    *store
	pool     *pool
	durable  *durable.Store
	legacy   *legacy.Source
	coord    *coordinator
	server   *rpcServer
	grpc     *grpc.Server
	health   *healthServer
	options  options
	stopOnce sync.Once
}

// Config is the set of externally supplied parameters a Node is built
// from, mirroring spec.md §6's environment-variable configuration surface.
type Config struct {
	// NodeID is this node's own address in host:port form, and must appear
	// verbatim in Peers.
	NodeID string
	// Peers is the full, static cluster membership list (spec.md §3): every
	// node's address, including this one.
	Peers []string
	// DurableURL is a Postgres connection string for the Durable-Store
	// Adapter. Empty disables durability (spec.md §4.6's disabled mode).
	DurableURL string
	// LegacyURL is the base URL of the Legacy-Source Adapter's HTTP API.
	// Empty disables read-through (spec.md §4.7).
	LegacyURL string
	// HealthAddr is the address the health-check HTTP server listens on.
	// Empty disables it.
	HealthAddr string
}

// NewNode builds a Node from cfg and opts but does not start serving.
func NewNode(cfg Config, opts ...Option) (*Node, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ring, err := NewRing(cfg.Peers, o.vnodeCount)
	if err != nil {
		return nil, fmt.Errorf("kvring: build ring: %w", err)
	}

	var peers []string
	for _, p := range cfg.Peers {
		if p != cfg.NodeID {
			peers = append(peers, p)
		}
	}

	st := newStore()
	p := newPool(peers, o.logger)

	var durableStore *durable.Store
	var durAdapter durableAdapter
	if cfg.DurableURL != "" {
		durableStore, err = durable.Open(cfg.DurableURL)
		if err != nil {
			return nil, fmt.Errorf("kvring: open durable store: %w", err)
		}
		durAdapter = durableStore
	}

	var legacySrc *legacy.Source
	var legAdapter legacySource
	if cfg.LegacyURL != "" {
		legacySrc = legacy.New(cfg.LegacyURL, nil)
		legAdapter = legacySrc
	}

	coord := newCoordinator(cfg.NodeID, ring, st, p, durAdapter, legAdapter, o)
	rpcSrv := newRPCServer(coord)

	var health *healthServer
	if cfg.HealthAddr != "" {
		health = newHealthServer(cfg.HealthAddr, st)
	}

	return &Node{
		selfID:  cfg.NodeID,
		ring:    ring,
		store:   st,
		pool:    p,
		durable: durableStore,
		legacy:  legacySrc,
		coord:   coord,
		server:  rpcSrv,
		health:  health,
		options: o,
	}, nil
}

// Start binds the gRPC listener at n.selfID, begins serving the Cache
// service, and starts the health-check HTTP server if configured. It
// blocks until ctx is canceled, then gracefully stops.
func (n *Node) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", n.selfID)
	if err != nil {
		return fmt.Errorf("kvring: listen on %s: %w", n.selfID, err)
	}

	n.grpc = grpc.NewServer()
	cachepb.RegisterCacheServer(n.grpc, n.server)

	errCh := make(chan error, 1)
	go func() {
		n.options.logger.Info("kvring: serving", "addr", n.selfID)
		errCh <- n.grpc.Serve(lis)
	}()

	if n.health != nil {
		go func() {
			if err := n.health.Start(); err != nil {
				n.options.logger.Error("kvring: health server failed", "error", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		n.Stop(context.Background())
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop gracefully drains in-flight RPCs, closes the replica pool, the
// health server, and the durable store connection. Safe to call more than
// once — only the first call has any effect.
func (n *Node) Stop(ctx context.Context) error {
	var stopErr error
	n.stopOnce.Do(func() {
		if n.grpc != nil {
			n.grpc.GracefulStop()
		}
		if n.health != nil {
			n.health.Stop(ctx)
		}
		if err := n.pool.Close(); err != nil {
			n.options.logger.Warn("kvring: closing replica pool", "error", err)
		}
		if n.durable != nil {
			if err := n.durable.Close(); err != nil {
				stopErr = fmt.Errorf("kvring: closing durable store: %w", err)
			}
		}
	})
	return stopErr
}

// Ring exposes the node's ring.
func (n *Node) Ring() *Ring {
	return n.ring
}
