package kvring

import "errors"

// Error taxonomy for coordinator-level failures (spec.md §7). The RPC
// server maps each of these to a transport-level status. cmd/kvctl makes a
// single attempt against one node and does not retry on any error.
var (
	// ErrNotFound is returned when a GET misses the owner's Local Store
	// and the Legacy-Source Adapter fallback also misses.
	ErrNotFound = errors.New("kvring: key not found")

	// ErrUnavailable is returned when the owner of a key could not be
	// reached to forward a request to. Retriable against a different
	// node; the ring does not change, so retrying against the same node
	// will fail identically.
	ErrUnavailable = errors.New("kvring: owner unavailable")

	// ErrDurabilityFailure is returned when the Durable-Store Adapter
	// failed to apply a write. The Local Store is left unchanged.
	ErrDurabilityFailure = errors.New("kvring: durable store write failed")

	// ErrInvalid is returned synchronously for malformed requests: empty
	// keys, or an RPC surface violation such as a peer call landing on a
	// non-owner (spec.md §4.3's anti-loop rule). Value size is not checked
	// here; only the transport's own message size limit applies.
	ErrInvalid = errors.New("kvring: invalid request")
)

// ErrEmptyMembership is returned when a ring is built from an empty
// membership list (spec.md §4.1's edge case).
var ErrEmptyMembership = errors.New("kvring: ring requires at least one member")
