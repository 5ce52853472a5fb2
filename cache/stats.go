package cache

// Stats holds the cache performance counters: one reference counter and one
// miss counter per reference kind. Counters only grow for the lifetime of a
// cache; ResetStats and Reset are the only ways to clear them.
type Stats struct {
	InstructionReferences uint64
	InstructionMisses     uint64
	DataReadReferences    uint64
	DataReadMisses        uint64
	DataWriteReferences   uint64
	DataWriteMisses       uint64
}

// TotalReferences returns the number of references processed across all
// kinds.
func (s Stats) TotalReferences() uint64 {
	return s.InstructionReferences + s.DataReadReferences + s.DataWriteReferences
}

// TotalMisses returns the number of misses across all kinds.
func (s Stats) TotalMisses() uint64 {
	return s.InstructionMisses + s.DataReadMisses + s.DataWriteMisses
}

// TotalHits returns the number of hits across all kinds.
func (s Stats) TotalHits() uint64 {
	return s.TotalReferences() - s.TotalMisses()
}

// HitRatio returns hits divided by references. It is NaN when no references
// have been processed.
func (s Stats) HitRatio() float64 {
	return float64(s.TotalHits()) / float64(s.TotalReferences())
}

// record counts one processed reference of the given kind, and the miss if
// it was one.
func (s *Stats) record(kind Kind, miss bool) {
	switch kind {
	case Instruction:
		s.InstructionReferences++
		if miss {
			s.InstructionMisses++
		}
	case DataRead:
		s.DataReadReferences++
		if miss {
			s.DataReadMisses++
		}
	case DataWrite:
		s.DataWriteReferences++
		if miss {
			s.DataWriteMisses++
		}
	}
}
