package sim

import "errors"

var (
	// ErrBadCapacity indicates the simulator was constructed with a non-positive capacity.
	ErrBadCapacity = errors.New("sim: capacity must be a positive integer")

	// ErrBadRequest indicates an allocation request with an empty owner or non-positive size.
	ErrBadRequest = errors.New("sim: owner must be non-empty and size must be > 0")

	// ErrNoFit indicates that no single free block is large enough for the request.
	ErrNoFit = errors.New("sim: no single free block large enough")

	// ErrNotFound indicates a free request naming an owner with no live allocation.
	ErrNotFound = errors.New("sim: no live allocation for owner")

	// ErrTableCorrupt indicates the block table lost contiguity or total size.
	// This is an engine bug, not a user input error, and aborts the run.
	ErrTableCorrupt = errors.New("sim: block table corrupt")
)
