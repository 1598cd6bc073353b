package kvring

// vnode represents a single virtual node's fixed position on the ring
// (spec.md §3, §4.1). Unlike the lease-based rings this package is
// descended from, a vnode here carries no expiration: the ring is built
// once at boot from an ordered membership list and never mutates.
type vnode struct {
	nodeID string
	// preimage is the exact pre-hash string ("{node_id}#{i}") hashed to
	// produce position. Kept so two vnodes that land on the same hash
	// value can be tie-broken lexicographically by preimage, as spec.md
	// §4.1 requires.
	preimage string
	position uint64
}
