package pool

import "errors"

var (
	// ErrInvalidHandle indicates a handle outside the range an operation accepts,
	// the sentinel where a live node is required, or the free-list head.
	ErrInvalidHandle = errors.New("pool: invalid handle")

	// ErrInvalidCapacity indicates a reservation size that is negative or larger
	// than the handle space.
	ErrInvalidCapacity = errors.New("pool: invalid capacity")

	// ErrPoolFull indicates the free list is empty and every handle is in use.
	ErrPoolFull = errors.New("pool: handle space exhausted")

	// ErrStaleCursor indicates a cursor was used after the pool was mutated.
	ErrStaleCursor = errors.New("pool: cursor used after pool mutation")
)
