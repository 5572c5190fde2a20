package pool

import "math"

// Handle identifies a node slot in a Pool. Handle h addresses slot h-1.
// The zero value is the Sentinel.
type Handle uint32

// Sentinel is the handle meaning "no node". It is the head of every empty
// stack and the terminator of every chain, including the free list.
const Sentinel Handle = 0

// MaxNodes is the largest number of slots a pool can hold.
const MaxNodes = math.MaxInt32

// Node is one slot of the backing array.
type Node[T any] struct {
	Value T
	Next  Handle
}

// State is the complete persistent state of a pool.
type State[T any] struct {
	Nodes    []Node[T]
	FreeHead Handle
	Capacity int
	MaxNodes int // 0 means MaxNodes
	Stats    Stats
}

// Stats holds pool counters.
type Stats struct {
	Pushes     int // Total successful Push calls
	Pops       int // Nodes removed from stacks, including by FreeStack
	Appends    int // Pushes that appended a new slot
	Reuses     int // Pushes served from the free list
	FreeStacks int // Successful FreeStack calls on non-empty stacks
	Grows      int // Backing array reallocations (append growth and Reserve)
}

// Options configures a new Pool.
type Options struct {
	// Capacity pre-allocates backing storage for this many nodes.
	// Default: 0
	Capacity int

	// MaxNodes caps the number of slots. Push fails with ErrPoolFull once the
	// cap is reached and the free list is empty.
	// Default: MaxNodes
	MaxNodes int
}
