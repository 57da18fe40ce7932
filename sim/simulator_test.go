package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSim is a test helper that constructs a simulator or fails the test.
func newSim(t *testing.T, capacity int) *Simulator {
	t.Helper()
	s, err := New(capacity)
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -1000} {
		_, err := New(capacity)
		assert.ErrorIs(t, err, ErrBadCapacity, "capacity %d", capacity)
	}
}

func TestNewStartsAsSingleFreeBlock(t *testing.T) {
	s := newSim(t, 1000)
	assert.Equal(t, []Block{{Start: 0, Size: 1000}}, s.Blocks())
	assert.NoError(t, s.Validate())
}

// TestAllocateWholeRegion covers Scenario 1: an exact-fit allocation of
// the entire region relabels the single block without splitting.
func TestAllocateWholeRegion(t *testing.T) {
	s := newSim(t, 1000)

	addr, err := s.Allocate("P1", 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, addr)

	assert.Equal(t, []Block{{Start: 0, Size: 1000, Owner: "P1"}}, s.Blocks())
	assert.Equal(t, 0, s.TotalFree())
	assert.Equal(t, 1, s.AllocSuccesses())
	assert.NoError(t, s.Validate())
}

// TestFreeDoesNotMergeAcrossOwnedBlock covers Scenario 2: a freed block
// stays separate from free space on the far side of a live allocation.
func TestFreeDoesNotMergeAcrossOwnedBlock(t *testing.T) {
	s := newSim(t, 300)

	_, err := s.Allocate("P1", 100)
	require.NoError(t, err)
	_, err = s.Allocate("P2", 100)
	require.NoError(t, err)

	freed, err := s.Free("P1")
	require.NoError(t, err)
	assert.Equal(t, Block{Start: 0, Size: 100, Owner: "P1"}, freed)

	assert.Equal(t, []Block{
		{Start: 0, Size: 100},
		{Start: 100, Size: 100, Owner: "P2"},
		{Start: 200, Size: 100},
	}, s.Blocks())
	assert.NoError(t, s.Validate())
}

// TestFragmentedFreeBlocksStaySeparate covers Scenario 3: freeing either
// side of a live allocation leaves two separate free blocks.
func TestFragmentedFreeBlocksStaySeparate(t *testing.T) {
	s := newSim(t, 300)

	for _, name := range []string{"P1", "P2", "P3"} {
		_, err := s.Allocate(name, 100)
		require.NoError(t, err)
	}

	_, err := s.Free("P1")
	require.NoError(t, err)
	_, err = s.Free("P3")
	require.NoError(t, err)

	assert.Equal(t, []Block{
		{Start: 0, Size: 100},
		{Start: 100, Size: 100, Owner: "P2"},
		{Start: 200, Size: 100},
	}, s.Blocks())
	assert.Equal(t, 200, s.TotalFree())
	assert.Equal(t, 100, s.LargestFree())
	assert.NoError(t, s.Validate())
}

// TestFreeingMiddleBlockMergesAll covers Scenario 4: releasing the block
// between two free blocks collapses the whole region into one free block.
func TestFreeingMiddleBlockMergesAll(t *testing.T) {
	s := newSim(t, 300)

	for _, name := range []string{"P1", "P2", "P3"} {
		_, err := s.Allocate(name, 100)
		require.NoError(t, err)
	}
	_, err := s.Free("P1")
	require.NoError(t, err)
	_, err = s.Free("P3")
	require.NoError(t, err)
	_, err = s.Free("P2")
	require.NoError(t, err)

	assert.Equal(t, []Block{{Start: 0, Size: 300}}, s.Blocks())
	assert.NoError(t, s.Validate())
}

// TestAllocateTooLargeFails covers Scenario 5: an oversized request fails,
// bumps only the failure counter, and leaves the table untouched.
func TestAllocateTooLargeFails(t *testing.T) {
	s := newSim(t, 100)

	_, err := s.Allocate("P1", 150)
	assert.ErrorIs(t, err, ErrNoFit)

	assert.Equal(t, 0, s.AllocSuccesses())
	assert.Equal(t, 1, s.AllocFailures())
	assert.Equal(t, []Block{{Start: 0, Size: 100}}, s.Blocks())
	assert.NoError(t, s.Validate())
}

// TestFreeUnknownOwner covers Scenario 6: freeing a name with no live
// allocation fails without touching the table or the counters.
func TestFreeUnknownOwner(t *testing.T) {
	s := newSim(t, 100)

	_, err := s.Free("Ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []Block{{Start: 0, Size: 100}}, s.Blocks())
	assert.Equal(t, 0, s.AllocSuccesses())
	assert.Equal(t, 0, s.AllocFailures())
}

func TestExactFitDoesNotSplit(t *testing.T) {
	s := newSim(t, 300)

	// Carve a 100-byte hole bounded by an owned block: [free:100][P2:200].
	_, err := s.Allocate("P1", 100)
	require.NoError(t, err)
	_, err = s.Allocate("P2", 200)
	require.NoError(t, err)
	_, err = s.Free("P1")
	require.NoError(t, err)

	before := len(s.Blocks())
	addr, err := s.Allocate("P3", 100)
	require.NoError(t, err)
	assert.Equal(t, 0, addr)
	assert.Len(t, s.Blocks(), before, "exact fit must relabel, not split")
}

func TestSplitAddsExactlyOneBlock(t *testing.T) {
	s := newSim(t, 1000)

	before := s.Blocks()
	addr, err := s.Allocate("P1", 400)
	require.NoError(t, err)
	assert.Equal(t, 0, addr)

	after := s.Blocks()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, Block{Start: 0, Size: 400, Owner: "P1"}, after[0])
	assert.Equal(t, Block{Start: 400, Size: 600}, after[1])
	assert.Equal(t, before[0].Size, after[0].Size+after[1].Size,
		"split halves must sum to the original block")
}

// TestFirstFitPicksLowestAddress verifies that the lowest-address
// qualifying free block wins even when a tighter fit exists later.
func TestFirstFitPicksLowestAddress(t *testing.T) {
	s := newSim(t, 400)

	// Layout: [free:100][P2:100][free:50][P4:150]
	_, err := s.Allocate("P1", 100)
	require.NoError(t, err)
	_, err = s.Allocate("P2", 100)
	require.NoError(t, err)
	_, err = s.Allocate("P3", 50)
	require.NoError(t, err)
	_, err = s.Allocate("P4", 150)
	require.NoError(t, err)
	_, err = s.Free("P1")
	require.NoError(t, err)
	_, err = s.Free("P3")
	require.NoError(t, err)

	// 50 fits exactly at address 200, but first-fit must take address 0.
	addr, err := s.Allocate("P5", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, addr)
}

// TestNoFitAcrossFragments verifies the central fragmentation behavior:
// enough total free memory split across blocks still fails.
func TestNoFitAcrossFragments(t *testing.T) {
	s := newSim(t, 300)

	for _, name := range []string{"P1", "P2", "P3"} {
		_, err := s.Allocate(name, 100)
		require.NoError(t, err)
	}
	_, err := s.Free("P1")
	require.NoError(t, err)
	_, err = s.Free("P3")
	require.NoError(t, err)

	require.Equal(t, 200, s.TotalFree())
	_, err = s.Allocate("P4", 150)
	assert.ErrorIs(t, err, ErrNoFit, "150 must not fit in two 100-byte holes")
	assert.Equal(t, 1, s.AllocFailures())
}

// TestDuplicateOwnerNames verifies the preserved original behavior:
// duplicate names are allowed and Free releases the lowest-address block
// per call.
func TestDuplicateOwnerNames(t *testing.T) {
	s := newSim(t, 300)

	a1, err := s.Allocate("P1", 100)
	require.NoError(t, err)
	_, err = s.Allocate("X", 100)
	require.NoError(t, err)
	a2, err := s.Allocate("P1", 100)
	require.NoError(t, err)
	assert.Equal(t, 0, a1)
	assert.Equal(t, 200, a2)

	freed, err := s.Free("P1")
	require.NoError(t, err)
	assert.Equal(t, 0, freed.Start, "first Free must release the lowest-address P1")

	freed, err = s.Free("P1")
	require.NoError(t, err)
	assert.Equal(t, 200, freed.Start)

	_, err = s.Free("P1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadRequestsDoNotTouchCounters(t *testing.T) {
	s := newSim(t, 100)

	_, err := s.Allocate("", 10)
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = s.Allocate("P1", 0)
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = s.Allocate("P1", -5)
	assert.ErrorIs(t, err, ErrBadRequest)

	assert.Equal(t, 0, s.AllocSuccesses())
	assert.Equal(t, 0, s.AllocFailures())
	assert.Equal(t, []Block{{Start: 0, Size: 100}}, s.Blocks())
}

func TestBlocksReturnsIsolatedCopy(t *testing.T) {
	s := newSim(t, 100)
	snap := s.Blocks()
	snap[0].Owner = "mutated"
	assert.Equal(t, []Block{{Start: 0, Size: 100}}, s.Blocks())
}
