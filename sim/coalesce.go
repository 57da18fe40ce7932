package sim

// coalesce rewrites the table so every maximal run of adjacent free
// blocks becomes a single free block. Single left-to-right pass: the last
// block of the output acts as the accumulator, and a free source block
// extends a free accumulator instead of being appended. Idempotent.
//
// Addresses are re-derived from zero while rebuilding rather than trusted
// from incremental arithmetic. The re-derivation is also a consistency
// check: if the rebuilt table does not end exactly at the region
// capacity, an earlier splice corrupted the table.
func (s *Simulator) coalesce() error {
	merged := make([]Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		if n := len(merged); n > 0 && merged[n-1].Free() && b.Free() {
			merged[n-1].Size += b.Size
			continue
		}
		merged = append(merged, b)
	}

	addr := 0
	for i := range merged {
		merged[i].Start = addr
		addr += merged[i].Size
	}
	if addr != s.capacity {
		return ErrTableCorrupt
	}

	s.blocks = merged
	return nil
}
