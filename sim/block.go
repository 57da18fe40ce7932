package sim

import "fmt"

// Block is a contiguous, non-empty address range in the simulated region,
// either free or owned by a single process name.
type Block struct {
	Start int    `json:"start"`
	Size  int    `json:"size"`
	Owner string `json:"owner,omitempty"`
}

// Free reports whether the block is unowned.
func (b Block) Free() bool { return b.Owner == "" }

// End returns the exclusive end address of the block.
func (b Block) End() int { return b.Start + b.Size }

// String renders the block the way the memory map prints it.
func (b Block) String() string {
	if b.Free() {
		return fmt.Sprintf("[Free  start=%d size=%d]", b.Start, b.Size)
	}
	return fmt.Sprintf("[%s start=%d size=%d]", b.Owner, b.Start, b.Size)
}
