package kvring

import (
	"fmt"
	"sort"
	"strings"
)

// Ring is the cluster's consistent-hash partitioner (spec.md §4.1). It is
// built once from an ordered membership list and never mutates afterward —
// every node constructs a byte-identical Ring from the same membership
// list, which is the cluster's entire agreement mechanism in lieu of
// gossip or consensus (spec.md §3). Being immutable, it needs no lock and
// is safe to share by reference across every goroutine handling requests.
type Ring struct {
	members []string // the ordered membership list the ring was built from
	vnodes  []vnode  // sorted by position, ties broken by preimage
}

// NewRing builds a Ring from an ordered list of node identities, each
// placed at vnodeCount virtual positions (spec.md §4.1). members must be
// non-empty; an empty list is a construction failure, matching spec.md's
// edge case.
func NewRing(members []string, vnodeCount int) (*Ring, error) {
	if len(members) == 0 {
		return nil, ErrEmptyMembership
	}
	if vnodeCount <= 0 {
		vnodeCount = 1
	}

	vnodes := make([]vnode, 0, len(members)*vnodeCount)
	for _, m := range members {
		for i := 0; i < vnodeCount; i++ {
			pre := vnodePreimage(m, i)
			vnodes = append(vnodes, vnode{
				nodeID:   m,
				preimage: pre,
				position: hash64(pre),
			})
		}
	}

	// Sort clockwise by position; ties are broken lexicographically by the
	// vnode's pre-hash string, per spec.md §4.1.
	sort.Slice(vnodes, func(i, j int) bool {
		if vnodes[i].position != vnodes[j].position {
			return vnodes[i].position < vnodes[j].position
		}
		return vnodes[i].preimage < vnodes[j].preimage
	})

	return &Ring{
		members: append([]string(nil), members...),
		vnodes:  vnodes,
	}, nil
}

// Members returns the ordered membership list the ring was built from.
func (r *Ring) Members() []string {
	return append([]string(nil), r.members...)
}

// Owner returns the primary owner of key: successors(key, 1)[0].
func (r *Ring) Owner(key string) string {
	s := r.Successors(key, 1)
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Successors returns up to count distinct physical node identities
// responsible for key, walking clockwise from key's hash and wrapping at
// the top of the ring (spec.md §4.1). If count exceeds the number of
// distinct members, all members are returned in clockwise order starting
// from the owner.
func (r *Ring) Successors(key string, count int) []string {
	if len(r.vnodes) == 0 || count <= 0 {
		return nil
	}
	if count > len(r.members) {
		count = len(r.members)
	}

	h := hash64(key)
	idx := sort.Search(len(r.vnodes), func(i int) bool {
		return r.vnodes[i].position >= h
	})

	result := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for i := 0; len(result) < count && i < len(r.vnodes); i++ {
		vn := r.vnodes[(idx+i)%len(r.vnodes)]
		if seen[vn.nodeID] {
			continue
		}
		seen[vn.nodeID] = true
		result = append(result, vn.nodeID)
	}
	return result
}

// String returns a compact human-readable summary of the ring: its member
// and vnode counts followed by one line per member.
func (r *Ring) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Ring: %d members, %d vnodes\n", len(r.members), len(r.vnodes)))
	for _, m := range r.members {
		b.WriteString(fmt.Sprintf("  %s\n", m))
	}
	return b.String()
}
