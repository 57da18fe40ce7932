// Package sim implements a single-region, first-fit memory allocation
// simulator over a fixed-size address space.
//
// # Overview
//
// A Simulator owns an ordered block table covering [0, capacity) with no
// gaps and no overlaps. Allocate performs a first-fit scan and splits the
// chosen free block when the fit is not exact; Free releases the
// lowest-address block owned by a name and immediately merges adjacent
// free blocks. The table is rebuilt with re-derived addresses on every
// merge, which doubles as a consistency check on the engine itself.
//
// # Invariants
//
// Before and after every public operation:
//
//   - the first block starts at address 0
//   - consecutive blocks are contiguous: blocks[i].End() == blocks[i+1].Start
//   - the last block ends exactly at the region capacity
//   - every block has a positive size
//   - no two adjacent blocks are both free (restored by coalescing)
//
// Validate checks all of the above and is used by the test suite after
// every mutation.
//
// # Usage Example
//
//	s, err := sim.New(1000)
//	if err != nil {
//	    return err
//	}
//	addr, err := s.Allocate("P1", 100)
//	...
//	freed, err := s.Free("P1")
//	rep := s.Report()
//
// # Thread Safety
//
// Simulator instances are not thread-safe. Replay of a trace is strictly
// sequential because first-fit outcomes depend on the order of prior
// splits and merges. Independent Simulator instances share no state and
// may be driven from different goroutines.
package sim
