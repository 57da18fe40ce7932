package sim

// TotalFree returns the sum of sizes of all free blocks.
func TotalFree(blocks []Block) int {
	sum := 0
	for _, b := range blocks {
		if b.Free() {
			sum += b.Size
		}
	}
	return sum
}

// LargestFree returns the size of the largest free block, or 0 if none.
func LargestFree(blocks []Block) int {
	largest := 0
	for _, b := range blocks {
		if b.Free() && b.Size > largest {
			largest = b.Size
		}
	}
	return largest
}

// FragPercent returns external fragmentation as a percentage of capacity:
// the fraction of the region that is free but outside the largest free
// block. A region with no free memory reports 0.
func FragPercent(blocks []Block, capacity int) float64 {
	free := TotalFree(blocks)
	if free == 0 {
		return 0
	}
	return float64(free-LargestFree(blocks)) / float64(capacity) * 100
}

// Report summarizes a run: region size, free-space shape, and allocation
// outcome counts.
type Report struct {
	Capacity     int     `json:"capacity"`
	TotalFree    int     `json:"total_free"`
	LargestFree  int     `json:"largest_free"`
	FragPercent  float64 `json:"external_fragmentation_pct"`
	AllocSuccess int     `json:"alloc_success"`
	AllocFail    int     `json:"alloc_failures"`
}

// TotalFree returns the free bytes in the current table.
func (s *Simulator) TotalFree() int { return TotalFree(s.blocks) }

// LargestFree returns the largest free block size in the current table.
func (s *Simulator) LargestFree() int { return LargestFree(s.blocks) }

// FragPercent returns the current external fragmentation percentage.
func (s *Simulator) FragPercent() float64 { return FragPercent(s.blocks, s.capacity) }

// AllocSuccesses returns the number of allocation requests that succeeded.
func (s *Simulator) AllocSuccesses() int { return s.allocSuccess }

// AllocFailures returns the number of allocation requests that failed.
func (s *Simulator) AllocFailures() int { return s.allocFail }

// Report returns the summary for the current state of the run.
func (s *Simulator) Report() Report {
	return Report{
		Capacity:     s.capacity,
		TotalFree:    s.TotalFree(),
		LargestFree:  s.LargestFree(),
		FragPercent:  s.FragPercent(),
		AllocSuccess: s.allocSuccess,
		AllocFail:    s.allocFail,
	}
}
