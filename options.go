package kvring

import (
	"io"
	"log/slog"
	"time"
)

// options configures Node behavior (internal only).
type options struct {
	vnodeCount        int
	replicationFactor int
	clientDeadline    time.Duration
	replicaDeadline   time.Duration
	durableDeadline   time.Duration
	legacyDeadline    time.Duration
	logger            *slog.Logger
}

// defaultOptions returns sensible defaults, matching spec.md's recommended
// values: V >= 64 virtual nodes, R = min(3, cluster size), a 250ms
// replication deadline, a 500ms legacy-source deadline, and an overall
// 2s client-facing deadline.
func defaultOptions() options {
	return options{
		vnodeCount:        64,
		replicationFactor: 3,
		clientDeadline:    2 * time.Second,
		replicaDeadline:   250 * time.Millisecond,
		durableDeadline:   500 * time.Millisecond,
		legacyDeadline:    500 * time.Millisecond,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring a Node.
type Option func(*options)

// WithVNodeCount sets the number of virtual nodes per physical node on the
// ring (spec.md §4.1: V >= 64 recommended).
func WithVNodeCount(count int) Option {
	return func(o *options) {
		o.vnodeCount = count
	}
}

// WithReplicationFactor sets R, the number of nodes (including the owner)
// that hold a key. Values greater than the cluster size are clamped when
// the ring computes a key's successor list (spec.md §3).
func WithReplicationFactor(r int) Option {
	return func(o *options) {
		o.replicationFactor = r
	}
}

// WithClientDeadline sets the overall deadline bounding a client-facing
// GET/SET/DELETE call: forward hop + durable write + replication wait
// (spec.md §5, default 2s).
func WithClientDeadline(d time.Duration) Option {
	return func(o *options) {
		o.clientDeadline = d
	}
}

// WithReplicaDeadline sets the per-call deadline for a replication RPC
// fanned out to a successor (spec.md §4.3, recommended 250ms).
func WithReplicaDeadline(d time.Duration) Option {
	return func(o *options) {
		o.replicaDeadline = d
	}
}

// WithDurableDeadline sets the deadline for the Durable-Store Adapter's
// put/delete/get calls (spec.md §4.6).
func WithDurableDeadline(d time.Duration) Option {
	return func(o *options) {
		o.durableDeadline = d
	}
}

// WithLegacyDeadline sets the deadline for the Legacy-Source Adapter's
// fetch call (spec.md §4.7, recommended 500ms).
func WithLegacyDeadline(d time.Duration) Option {
	return func(o *options) {
		o.legacyDeadline = d
	}
}

// WithLogger sets the logger used by the node and its background workers.
// If logger is nil, a no-op logger is used.
// DEFAULT: a no-op logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			return
		}
		o.logger = logger
	}
}
