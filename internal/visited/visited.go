// Package visited tracks traversal state with a bitset cheap enough to
// reuse across searches.
package visited

// VisitedSet tracks visited node ids using a bitset and a dirty list for
// fast reset. Ids must be non-negative.
type VisitedSet struct {
	bits  []uint64
	dirty []int
}

// New creates a visited set sized for capacity nodes.
func New(capacity int) *VisitedSet {
	return &VisitedSet{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]int, 0, 128),
	}
}

// Visit marks a node as visited.
func (v *VisitedSet) Visit(id int) {
	wordIdx := id >> 6
	bitMask := uint64(1) << (uint(id) & 63)

	if wordIdx >= len(v.bits) {
		v.grow(wordIdx + 1)
	}

	if v.bits[wordIdx]&bitMask == 0 {
		v.bits[wordIdx] |= bitMask
		v.dirty = append(v.dirty, id)
	}
}

// Visited reports whether the node has been visited.
func (v *VisitedSet) Visited(id int) bool {
	wordIdx := id >> 6
	if wordIdx >= len(v.bits) {
		return false
	}
	return v.bits[wordIdx]&(uint64(1)<<(uint(id)&63)) != 0
}

// Reset clears the visited status of every node visited since the last
// reset. Cost scales with the number of visits, not the capacity.
func (v *VisitedSet) Reset() {
	for _, id := range v.dirty {
		v.bits[id>>6] &^= uint64(1) << (uint(id) & 63)
	}
	v.dirty = v.dirty[:0]
}

// EnsureCapacity grows the set so it can hold at least capacity nodes.
func (v *VisitedSet) EnsureCapacity(capacity int) {
	words := (capacity + 63) / 64
	if words > len(v.bits) {
		v.grow(words)
	}
}

func (v *VisitedSet) grow(newLen int) {
	newCap := len(v.bits) * 2
	if newCap < newLen {
		newCap = newLen
	}
	newBits := make([]uint64, newCap)
	copy(newBits, v.bits)
	v.bits = newBits
}
