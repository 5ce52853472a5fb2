package cache

import "fmt"

// Kind classifies a memory reference.
type Kind int

const (
	// Instruction is an instruction fetch.
	Instruction Kind = iota
	// DataRead is a data load.
	DataRead
	// DataWrite is a data store.
	DataWrite
)

func (k Kind) String() string {
	switch k {
	case Instruction:
		return "instruction"
	case DataRead:
		return "data read"
	case DataWrite:
		return "data write"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Reference is one replayed memory access.
type Reference struct {
	// Address of the access. Bits above the configured address width are
	// ignored.
	Address uint64
	// Kind of the access.
	Kind Kind
}

// AccessResult describes the outcome of processing one reference.
type AccessResult struct {
	// Hit is true when the referenced block was already present.
	Hit bool
	// Evicted is true if installing the block displaced a valid one.
	Evicted bool
	// EvictedTag is the tag of the displaced block when Evicted is true.
	EvictedTag uint64
}

// Access processes one memory reference: it splits the address, determines
// hit or miss, installs the block on a miss, refreshes the set's recency
// order, and updates the counters for the reference's kind. The only
// possible error is ErrLegacyReplacement from a set-associative miss under
// WithLegacyReplacement; in that case the cache is left unchanged and no
// counter moves.
func (c *Cache) Access(ref Reference) (AccessResult, error) {
	tag, index := c.layout.Split(ref.Address)

	way, hit := c.lookup(tag, index)
	result := AccessResult{Hit: hit}

	if !hit {
		victim, err := c.findVictim(index)
		if err != nil {
			return AccessResult{}, err
		}

		slot := &c.slots[c.slotIndex(index, victim)]
		if slot.Valid {
			result.Evicted = true
			result.EvictedTag = slot.Tag
		}

		slot.Valid = true
		slot.Dirty = ref.Kind == DataWrite
		slot.Tag = tag
		// Strictly older than any real rank so touch renumbers it in.
		slot.Recency = uint32(c.config.Associativity)

		way = victim
	}

	c.touch(index, way)
	c.stats.record(ref.Kind, !hit)

	return result, nil
}

// lookup scans the set at index in way order for a valid slot holding tag.
func (c *Cache) lookup(tag, index uint64) (way int, hit bool) {
	base := c.slotIndex(index, 0)
	for w := 0; w < c.config.Associativity; w++ {
		slot := c.slots[base+w]
		if slot.Valid && slot.Tag == tag {
			return w, true
		}
	}
	return 0, false
}

// findVictim picks the slot a missing block is installed into. A
// direct-mapped cache has no choice to make. Otherwise an invalid way is
// used first (it has never been referenced, so it is trivially the least
// recently used); with the set full, the valid slot with the maximum
// recency rank loses, ties going to the lowest way index.
func (c *Cache) findVictim(set uint64) (int, error) {
	if c.config.Associativity == 1 {
		return 0, nil
	}
	if c.legacyReplacement {
		return 0, fmt.Errorf(
			"%w: associativity %d", ErrLegacyReplacement, c.config.Associativity)
	}

	base := c.slotIndex(set, 0)
	for w := 0; w < c.config.Associativity; w++ {
		if !c.slots[base+w].Valid {
			return w, nil
		}
	}

	victim := 0
	oldest := c.slots[base].Recency
	for w := 1; w < c.config.Associativity; w++ {
		if c.slots[base+w].Recency > oldest {
			victim = w
			oldest = c.slots[base+w].Recency
		}
	}
	return victim, nil
}

// touch makes the slot at (set, way) the most recently used slot of its
// set. A slot that is already rank 0 needs no work. Otherwise every valid
// slot referenced more recently than it moves one step toward the least
// recently used end, keeping the ranks of the k valid slots of a set dense:
// exactly 0 through k-1.
func (c *Cache) touch(set uint64, way int) {
	base := c.slotIndex(set, 0)
	rank := c.slots[base+way].Recency
	if rank == 0 {
		return
	}

	for w := 0; w < c.config.Associativity; w++ {
		slot := &c.slots[base+w]
		if w != way && slot.Valid && slot.Recency < rank {
			slot.Recency++
		}
	}
	c.slots[base+way].Recency = 0
}
