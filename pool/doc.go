// Package pool provides a node pool that hosts many independent singly-linked
// stacks inside one contiguous backing array.
//
// # Overview
//
// Nodes are addressed by Handle, an integer index, instead of by pointer.
// Handle h addresses slot h-1 of the backing array; the zero handle is the
// Sentinel and means "no node". A logical stack is nothing more than the
// Handle of its front node, held by the caller. Any number of stacks can share
// one pool:
//
//	p := pool.New[int]()
//	a := p.NewStack()
//	a, _ = p.Push(10, a)
//	a, _ = p.Push(20, a)
//
//	for v := range p.Values(a) {
//	    fmt.Println(v) // 20, then 10
//	}
//
//	a, v, _ := p.Pop(a) // v == 20
//
// # Free List
//
// Popped slots are threaded onto a free list through the same Next fields the
// stacks use. Push takes a slot from the free list before it appends to the
// backing array, so the array only grows when every existing slot is live:
//
//	h, _ := p.Push(1, pool.Sentinel) // appends slot 1
//	h, _, _ = p.Pop(h)                // slot 1 moves to the free list
//	h, _ = p.Push(2, h)               // reuses slot 1
//
// Backing storage is never returned to the runtime and free space is never
// compacted.
//
// # Validation
//
// Every handle-accepting operation range checks its input before touching
// storage, so a failed call leaves the pool unchanged:
//
//   - Empty, Push, Begin and StackLen accept [Sentinel, Len()]
//   - Value, Next, Pop and FreeStack require (Sentinel, Len()]
//   - Pop and FreeStack reject the free-list head
//
// Failures wrap ErrInvalidHandle or ErrInvalidCapacity and are meant for
// errors.Is. The pool cannot tell which stack a handle belongs to: feeding it
// a stale handle from another stack is a caller bug it may not detect.
//
// # Iteration
//
// Cursor walks a stack from head to Sentinel without mutating the pool.
// Cursors record the pool's mutation epoch; after a Push, Pop, FreeStack or
// SetNext they fail with ErrStaleCursor. All and Values wrap a cursor as a
// range-over-func iterator.
//
// # Thread Safety
//
// Pool instances are not thread-safe. Read-only iteration from several
// goroutines is safe while nothing mutates the pool. For shared mutable use,
// see package syncpool.
//
// # Debug Logging
//
// Setting STACKPOOL_LOG_ALLOC (or calling SetAllocLogging) emits debug records
// through internal/logger whenever the backing array grows.
package pool
