package snapshot

import (
	"fmt"
	"maps"
	"slices"

	"github.com/joshuapare/stackpool/internal/format"
	"github.com/joshuapare/stackpool/pool"
)

// Snapshot is a pool and the names of the stacks it hosts.
type Snapshot[T any] struct {
	Pool   *pool.Pool[T]
	Stacks map[string]pool.Handle
}

// CapacityFloor is the backing capacity Decode always honors. Beyond it a
// stored capacity is trusted only up to twice the slot count.
const CapacityFloor = 4096

// Options configures decoding.
type Options struct {
	// Lenient skips the check that named stacks and the free list cover
	// every slot.
	Lenient bool

	// Unchecked skips every chain check, including the free-list walk.
	// Handles are still range checked. Run package verify on the result.
	Unchecked bool

	// MaxNodes bounds the slot count and capacity a file may declare.
	// Zero means pool.MaxNodes.
	MaxNodes int
}

// New returns a snapshot of p with no named stacks.
func New[T any](p *pool.Pool[T]) *Snapshot[T] {
	return &Snapshot[T]{Pool: p, Stacks: make(map[string]pool.Handle)}
}

// Names returns the stack names in sorted order.
func (s *Snapshot[T]) Names() []string {
	return slices.Sorted(maps.Keys(s.Stacks))
}

// Heads returns the stack heads in the order of Names.
func (s *Snapshot[T]) Heads() []pool.Handle {
	names := s.Names()
	heads := make([]pool.Handle, len(names))
	for i, name := range names {
		heads[i] = s.Stacks[name]
	}
	return heads
}

// Head returns the head of the named stack.
func (s *Snapshot[T]) Head(name string) (pool.Handle, error) {
	h, ok := s.Stacks[name]
	if !ok {
		return pool.Sentinel, fmt.Errorf("%w: no stack named %q", ErrStackName, name)
	}
	return h, nil
}

// Add registers a new empty stack under name.
func (s *Snapshot[T]) Add(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, ok := s.Stacks[name]; ok {
		return fmt.Errorf("%w: stack %q already exists", ErrStackName, name)
	}
	s.Stacks[name] = s.Pool.NewStack()
	return nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrStackName)
	}
	if len(name) > format.MaxStackNameLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrStackName, len(name), format.MaxStackNameLen)
	}
	return nil
}
