// Package cache models a single unified, write-back, write-allocate cache
// memory under a replayed stream of memory references. Only tags and status
// bits are tracked, never data: that is all a hit/miss model needs.
package cache

// Slot holds the state of one cache block: status bits, the tag, and the
// LRU recency rank. Rank 0 is the most recently used slot of its set; the
// slot with the largest rank is the eviction candidate. The rank of an
// invalid slot carries no meaning.
type Slot struct {
	Valid   bool
	Dirty   bool
	Tag     uint64
	Recency uint32
}

// Cache simulates one cache memory. It is exclusively owned by the driving
// loop; no concurrent access is supported.
type Cache struct {
	config  Config
	layout  Layout
	numSets int

	// Flat slot arena, indexed by set*Associativity+way.
	slots []Slot

	legacyReplacement bool

	stats Stats
}

// Option configures a Cache at construction time.
type Option func(*Cache)

// WithLegacyReplacement disables block replacement in anything but a
// direct-mapped cache: a miss with associativity greater than one fails
// with ErrLegacyReplacement instead of running the LRU policy.
func WithLegacyReplacement() Option {
	return func(c *Cache) {
		c.legacyReplacement = true
	}
}

// New creates a cache from the given geometry. The geometry is validated
// first and an invalid one yields a distinguishable error and no cache;
// construction never partially succeeds. All slots start invalid with tag 0
// and the dirty bit clear.
func New(config Config, opts ...Option) (*Cache, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	layout, err := DeriveLayout(config)
	if err != nil {
		return nil, err
	}

	numSets := config.NumSets()
	c := &Cache{
		config:  config,
		layout:  layout,
		numSets: numSets,
		slots:   make([]Slot, numSets*config.Associativity),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Config returns the cache geometry.
func (c *Cache) Config() Config {
	return c.config
}

// Layout returns the derived address field layout.
func (c *Cache) Layout() Layout {
	return c.layout
}

// NumSets returns the number of sets.
func (c *Cache) NumSets() int {
	return c.numSets
}

// Set returns a copy of the slots of the set at the given index, in way
// order.
func (c *Cache) Set(index uint64) []Slot {
	set := make([]Slot, c.config.Associativity)
	copy(set, c.slots[c.slotIndex(index, 0):])
	return set
}

// Stats returns the performance counters.
func (c *Cache) Stats() Stats {
	return c.stats
}

// ResetStats clears the performance counters without touching slot state.
func (c *Cache) ResetStats() {
	c.stats = Stats{}
}

// Reset invalidates every slot and clears the performance counters.
func (c *Cache) Reset() {
	for i := range c.slots {
		c.slots[i] = Slot{}
	}
	c.stats = Stats{}
}

func (c *Cache) slotIndex(set uint64, way int) int {
	return int(set)*c.config.Associativity + way
}
