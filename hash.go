package kvring

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// hash64 maps an arbitrary string onto the 64-bit ring space. MD5 is
// non-cryptographic-use here, truncated to its first 8 bytes, the same
// construction the example pack's partition-ring implementations use
// (crypto/md5 sum, big-endian uint64 of the first 8 bytes) — any
// uniformly distributed 64-bit hash satisfies spec.md §4.1; this one
// needs no extra dependency and is fixed and deterministic across nodes.
func hash64(s string) uint64 {
	sum := md5.Sum([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}

// vnodePreimage is the exact string hashed to place a node's i'th virtual
// node on the ring, per spec.md §4.1: hash(f"{node_id}#{i}").
func vnodePreimage(nodeID string, i int) string {
	return fmt.Sprintf("%s#%d", nodeID, i)
}
