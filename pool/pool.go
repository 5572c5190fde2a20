package pool

import (
	"fmt"
	"os"

	"github.com/joshuapare/stackpool/internal/buf"
	"github.com/joshuapare/stackpool/internal/logger"
)

// Runtime allocation logging - controlled by STACKPOOL_LOG_ALLOC env var.
var logAlloc = os.Getenv("STACKPOOL_LOG_ALLOC") != ""

// SetAllocLogging toggles debug records for backing-array growth and
// reservations. Records go to the internal logger at debug level.
func SetAllocLogging(on bool) { logAlloc = on }

// Pool hosts any number of singly-linked stacks in one growable backing array.
// Freed slots are threaded onto a free list through the same Next fields and
// are reused before the array grows.
//
// A Pool is not safe for concurrent use; see package syncpool.
type Pool[T any] struct {
	nodes    []Node[T]
	freeHead Handle
	limit    int

	// epoch is bumped by every structural mutation; cursors compare against it.
	epoch uint64

	stats Stats
}

// New returns an empty pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{limit: MaxNodes}
}

// NewSized returns an empty pool with backing storage reserved for n nodes.
func NewSized[T any](n int) (*Pool[T], error) {
	return NewWithOptions[T](Options{Capacity: n})
}

// NewWithOptions returns an empty pool configured by opts.
func NewWithOptions[T any](opts Options) (*Pool[T], error) {
	limit := opts.MaxNodes
	if limit == 0 {
		limit = MaxNodes
	}
	if err := buf.CheckCount(limit, MaxNodes); err != nil {
		return nil, fmt.Errorf("%w: max nodes: %s", ErrInvalidCapacity, err.Error())
	}
	p := &Pool[T]{limit: limit}
	if err := p.Reserve(opts.Capacity); err != nil {
		return nil, err
	}
	return p, nil
}

// Restore rebuilds a pool from a State. Every Next field and the free-list
// head must lie in [Sentinel, len(Nodes)], and the free list must terminate.
// The node slice is copied.
func Restore[T any](st State[T]) (*Pool[T], error) {
	p, err := RestoreRaw(st)
	if err != nil {
		return nil, err
	}
	if _, err := p.chainLen(st.FreeHead); err != nil {
		return nil, fmt.Errorf("restore: free list: %w", err)
	}
	return p, nil
}

// RestoreRaw is Restore without the free-list walk. Handles are still range
// checked, so every accessor stays in bounds, but chains may be cyclic or
// shared. It exists for diagnostics that run package verify afterwards.
func RestoreRaw[T any](st State[T]) (*Pool[T], error) {
	limit := st.MaxNodes
	if limit == 0 {
		limit = MaxNodes
	}
	if err := buf.CheckCount(limit, MaxNodes); err != nil {
		return nil, fmt.Errorf("restore: max nodes: %w: %s", ErrInvalidCapacity, err.Error())
	}
	nodes := st.Nodes
	if err := buf.CheckCount(len(nodes), limit); err != nil {
		return nil, fmt.Errorf("restore: %w: %s", ErrInvalidCapacity, err.Error())
	}
	if err := buf.CheckCount(st.Capacity, limit); err != nil {
		return nil, fmt.Errorf("restore: capacity: %w: %s", ErrInvalidCapacity, err.Error())
	}
	for i, n := range nodes {
		if err := buf.CheckHandle(uint32(n.Next), len(nodes), false); err != nil {
			return nil, fmt.Errorf("restore: slot %d next: %w: %s", i+1, ErrInvalidHandle, err.Error())
		}
	}
	if err := buf.CheckHandle(uint32(st.FreeHead), len(nodes), false); err != nil {
		return nil, fmt.Errorf("restore: free head: %w: %s", ErrInvalidHandle, err.Error())
	}

	return &Pool[T]{
		nodes:    append(make([]Node[T], 0, max(len(nodes), st.Capacity)), nodes...),
		freeHead: st.FreeHead,
		limit:    limit,
		stats:    st.Stats,
	}, nil
}

// State returns a copy of everything needed to Restore the pool.
func (p *Pool[T]) State() State[T] {
	return State[T]{
		Nodes:    append([]Node[T](nil), p.nodes...),
		FreeHead: p.freeHead,
		Capacity: cap(p.nodes),
		MaxNodes: p.limit,
		Stats:    p.stats,
	}
}

// NewStack returns the handle of a fresh empty stack, which is always Sentinel.
func (p *Pool[T]) NewStack() Handle { return Sentinel }

// Reserve pre-allocates backing storage for at least n nodes. It never
// shrinks storage and never creates live nodes.
func (p *Pool[T]) Reserve(n int) error {
	if err := buf.CheckCount(n, p.limit); err != nil {
		return fmt.Errorf("reserve: %w: %s", ErrInvalidCapacity, err.Error())
	}
	if n <= cap(p.nodes) {
		return nil
	}
	before := cap(p.nodes)
	grown := make([]Node[T], len(p.nodes), n)
	copy(grown, p.nodes)
	p.nodes = grown
	p.stats.Grows++

	if logAlloc {
		logger.Debug("pool reserve", "from", before, "to", n, "len", len(p.nodes))
	}
	return nil
}

// Capacity returns the number of slots the backing array can hold without
// reallocating.
func (p *Pool[T]) Capacity() int { return cap(p.nodes) }

// Len returns the number of slots ever created. Live and free slots both count.
func (p *Pool[T]) Len() int { return len(p.nodes) }

// FreeHead returns the head of the free list.
func (p *Pool[T]) FreeHead() Handle { return p.freeHead }

// FreeLen returns the number of slots on the free list.
func (p *Pool[T]) FreeLen() int {
	n, err := p.chainLen(p.freeHead)
	if err != nil {
		// Only reachable after SetNext corrupted the free list.
		return -1
	}
	return n
}

// Stats returns a copy of the pool counters.
func (p *Pool[T]) Stats() Stats { return p.stats }

// Empty reports whether h is the Sentinel. It fails with ErrInvalidHandle
// when h is beyond the current backing-array length.
func (p *Pool[T]) Empty(h Handle) (bool, error) {
	if err := p.check(h, false); err != nil {
		return false, fmt.Errorf("empty: %w", err)
	}
	return h == Sentinel, nil
}

// Value returns the value stored in slot h.
func (p *Pool[T]) Value(h Handle) (T, error) {
	if err := p.check(h, true); err != nil {
		var zero T
		return zero, fmt.Errorf("value: %w", err)
	}
	return p.nodes[h-1].Value, nil
}

// SetValue overwrites the value stored in slot h.
func (p *Pool[T]) SetValue(h Handle, v T) error {
	if err := p.check(h, true); err != nil {
		return fmt.Errorf("set value: %w", err)
	}
	p.nodes[h-1].Value = v
	return nil
}

// Next returns the handle linked after slot h.
func (p *Pool[T]) Next(h Handle) (Handle, error) {
	if err := p.check(h, true); err != nil {
		return Sentinel, fmt.Errorf("next: %w", err)
	}
	return p.nodes[h-1].Next, nil
}

// SetNext relinks slot h to next. This is a raw accessor: it range checks
// both handles but cannot stop the caller from creating cycles or joining
// chains.
func (p *Pool[T]) SetNext(h, next Handle) error {
	if err := p.check(h, true); err != nil {
		return fmt.Errorf("set next: %w", err)
	}
	if err := p.check(next, false); err != nil {
		return fmt.Errorf("set next: target: %w", err)
	}
	p.nodes[h-1].Next = next
	p.epoch++
	return nil
}

// Push inserts v at the front of the stack headed by head and returns the new
// head. A slot from the free list is reused when one exists; otherwise a slot
// is appended to the backing array.
func (p *Pool[T]) Push(v T, head Handle) (Handle, error) {
	if err := p.check(head, false); err != nil {
		return Sentinel, fmt.Errorf("push: %w", err)
	}
	if head != Sentinel && head == p.freeHead {
		return Sentinel, fmt.Errorf("push: %w: cannot push onto the free list", ErrInvalidHandle)
	}

	var h Handle
	if p.freeHead == Sentinel {
		if len(p.nodes) >= p.limit {
			return Sentinel, fmt.Errorf("push: %w (%d nodes)", ErrPoolFull, len(p.nodes))
		}
		before := cap(p.nodes)
		p.nodes = append(p.nodes, Node[T]{Value: v, Next: head})
		h = Handle(len(p.nodes))
		p.stats.Appends++
		if cap(p.nodes) != before {
			p.stats.Grows++
			if logAlloc {
				logger.Debug("pool grow", "from", before, "to", cap(p.nodes), "len", len(p.nodes))
			}
		}
	} else {
		h = p.freeHead
		n := &p.nodes[h-1]
		p.freeHead = n.Next
		n.Value = v
		n.Next = head
		p.stats.Reuses++
	}

	p.stats.Pushes++
	p.epoch++
	return h, nil
}

// Pop removes the front node of the stack headed by head. It returns the new
// head and the removed value. The slot moves to the front of the free list;
// its value stays in storage until the slot is reused.
func (p *Pool[T]) Pop(head Handle) (Handle, T, error) {
	var zero T
	if err := p.check(head, true); err != nil {
		return Sentinel, zero, fmt.Errorf("pop: %w", err)
	}
	if head == p.freeHead {
		return Sentinel, zero, fmt.Errorf("pop: %w: cannot pop the free list", ErrInvalidHandle)
	}
	next, v := p.release(head)
	p.epoch++
	return next, v, nil
}

// FreeStack moves every node of the stack headed by head onto the free list
// and returns Sentinel. Freeing an empty stack is a no-op.
//
// The chain is validated before anything is released, so a failed call leaves
// the pool unchanged.
func (p *Pool[T]) FreeStack(head Handle) (Handle, error) {
	if head == Sentinel {
		return Sentinel, nil
	}
	if err := p.check(head, true); err != nil {
		return head, fmt.Errorf("free stack: %w", err)
	}
	if head == p.freeHead {
		return head, fmt.Errorf("free stack: %w: cannot free the free list", ErrInvalidHandle)
	}

	steps := 0
	for h := head; h != Sentinel; h = p.nodes[h-1].Next {
		if h == p.freeHead {
			return head, fmt.Errorf("free stack: %w: chain from %d reaches the free list at %d", ErrInvalidHandle, head, h)
		}
		steps++
		if steps > len(p.nodes) {
			return head, fmt.Errorf("free stack: %w: chain from %d does not terminate", ErrInvalidHandle, head)
		}
	}

	for head != Sentinel {
		head, _ = p.release(head)
	}
	p.stats.FreeStacks++
	p.epoch++
	return Sentinel, nil
}

// StackLen returns the number of nodes in the stack headed by head.
func (p *Pool[T]) StackLen(head Handle) (int, error) {
	if err := p.check(head, false); err != nil {
		return 0, fmt.Errorf("stack len: %w", err)
	}
	n, err := p.chainLen(head)
	if err != nil {
		return 0, fmt.Errorf("stack len: %w", err)
	}
	return n, nil
}

// release unlinks slot h onto the free list. h must be a validated live head.
func (p *Pool[T]) release(h Handle) (Handle, T) {
	n := &p.nodes[h-1]
	next := n.Next
	n.Next = p.freeHead
	p.freeHead = h
	p.stats.Pops++
	return next, n.Value
}

// chainLen counts nodes from h to Sentinel, failing on cycles.
func (p *Pool[T]) chainLen(h Handle) (int, error) {
	n := 0
	for h != Sentinel {
		n++
		if n > len(p.nodes) {
			return 0, fmt.Errorf("%w: chain does not terminate", ErrInvalidHandle)
		}
		h = p.nodes[h-1].Next
	}
	return n, nil
}

// check validates h against the current backing-array length.
func (p *Pool[T]) check(h Handle, strict bool) error {
	if err := buf.CheckHandle(uint32(h), len(p.nodes), strict); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, err.Error())
	}
	return nil
}
