package sim

// Simulator owns the block table and outcome counters for one run.
//
// The table is the only mutable state; it starts as a single free block
// spanning the whole region and is spliced in place by Allocate and Free.
// Counters are per-instance so independent simulations compose safely.
type Simulator struct {
	capacity int
	blocks   []Block

	allocSuccess int
	allocFail    int
}

// New creates a simulator for a region of the given capacity, initialized
// to one free block spanning [0, capacity).
func New(capacity int) (*Simulator, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	return &Simulator{
		capacity: capacity,
		blocks:   []Block{{Start: 0, Size: capacity}},
	}, nil
}

// Capacity returns the total size of the simulated region.
func (s *Simulator) Capacity() int { return s.capacity }

// Blocks returns a snapshot of the block table in address order.
// The returned slice is a copy; callers may retain or mutate it freely.
func (s *Simulator) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Allocate places owner into the lowest-address free block with at least
// size bytes (first-fit) and returns the start address of the allocation.
//
// An exact fit relabels the block in place; a larger block is split into
// an owned block and a free remainder at the same table position. When no
// single free block qualifies the table is left unchanged, the failure
// counter is bumped, and ErrNoFit is returned. A tighter fit later in the
// table is never considered.
//
// Duplicate owner names across live allocations are permitted; each Free
// call releases only the lowest-address one.
func (s *Simulator) Allocate(owner string, size int) (int, error) {
	if owner == "" || size <= 0 {
		// Request validation, not an allocation outcome: counters untouched.
		return 0, ErrBadRequest
	}

	for i, b := range s.blocks {
		if !b.Free() || b.Size < size {
			continue
		}

		if b.Size == size {
			s.blocks[i].Owner = owner
		} else {
			split := append([]Block{
				{Start: b.Start, Size: size, Owner: owner},
				{Start: b.Start + size, Size: b.Size - size},
			}, s.blocks[i+1:]...)
			s.blocks = append(s.blocks[:i], split...)
		}

		s.allocSuccess++
		return b.Start, nil
	}

	s.allocFail++
	return 0, ErrNoFit
}

// Free releases the lowest-address block owned by owner, merges adjacent
// free blocks, and returns the block that was freed.
//
// An unknown owner returns ErrNotFound with the table unchanged; free
// failures are not tracked in the counters, which count allocations only.
func (s *Simulator) Free(owner string) (Block, error) {
	for i := range s.blocks {
		if s.blocks[i].Free() || s.blocks[i].Owner != owner {
			continue
		}
		freed := s.blocks[i]
		s.blocks[i].Owner = ""
		if err := s.coalesce(); err != nil {
			return Block{}, err
		}
		return freed, nil
	}
	return Block{}, ErrNotFound
}

// Validate checks the table invariants: contiguity from address 0,
// positive sizes, total size equal to capacity, and no two adjacent free
// blocks. A non-nil result indicates an engine bug.
func (s *Simulator) Validate() error {
	if len(s.blocks) == 0 {
		return ErrTableCorrupt
	}
	addr := 0
	for i, b := range s.blocks {
		if b.Size <= 0 || b.Start != addr {
			return ErrTableCorrupt
		}
		if i > 0 && b.Free() && s.blocks[i-1].Free() {
			return ErrTableCorrupt
		}
		addr = b.End()
	}
	if addr != s.capacity {
		return ErrTableCorrupt
	}
	return nil
}
