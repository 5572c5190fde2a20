// Package syncpool wraps a node pool with one coarse lock so several
// goroutines can share it.
//
// The free list and backing array are touched by every push and pop on every
// stack, so finer-grained locking would not help. Writers take the lock
// exclusively; readers share it.
package syncpool

import (
	"sync"

	"github.com/joshuapare/stackpool/pool"
)

// Pool is a goroutine-safe node pool.
type Pool[T any] struct {
	mu sync.RWMutex
	p  *pool.Pool[T]
}

// New returns an empty goroutine-safe pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{p: pool.New[T]()}
}

// NewWithOptions returns an empty goroutine-safe pool configured by opts.
func NewWithOptions[T any](opts pool.Options) (*Pool[T], error) {
	p, err := pool.NewWithOptions[T](opts)
	if err != nil {
		return nil, err
	}
	return &Pool[T]{p: p}, nil
}

// Wrap takes ownership of p. The caller must not use p directly afterwards.
func Wrap[T any](p *pool.Pool[T]) *Pool[T] {
	return &Pool[T]{p: p}
}

// NewStack returns the handle of a fresh empty stack.
func (s *Pool[T]) NewStack() pool.Handle { return pool.Sentinel }

// Push inserts v at the front of the stack headed by head.
func (s *Pool[T]) Push(v T, head pool.Handle) (pool.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Push(v, head)
}

// Pop removes the front node of the stack headed by head.
func (s *Pool[T]) Pop(head pool.Handle) (pool.Handle, T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Pop(head)
}

// FreeStack releases every node of the stack headed by head.
func (s *Pool[T]) FreeStack(head pool.Handle) (pool.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.FreeStack(head)
}

// Reserve pre-allocates backing storage for at least n nodes.
func (s *Pool[T]) Reserve(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Reserve(n)
}

// SetValue overwrites the value stored in slot h.
func (s *Pool[T]) SetValue(h pool.Handle, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.SetValue(h, v)
}

// Empty reports whether h heads an empty stack.
func (s *Pool[T]) Empty(h pool.Handle) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Empty(h)
}

// Value returns the value stored in slot h.
func (s *Pool[T]) Value(h pool.Handle) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Value(h)
}

// Next returns the handle linked after slot h.
func (s *Pool[T]) Next(h pool.Handle) (pool.Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Next(h)
}

// Len returns the number of slots ever created.
func (s *Pool[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Len()
}

// Capacity returns the backing-array capacity.
func (s *Pool[T]) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Capacity()
}

// FreeLen returns the number of slots on the free list.
func (s *Pool[T]) FreeLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.FreeLen()
}

// StackLen returns the number of nodes in the stack headed by head.
func (s *Pool[T]) StackLen(head pool.Handle) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.StackLen(head)
}

// Stats returns a copy of the pool counters.
func (s *Pool[T]) Stats() pool.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Stats()
}

// Values copies the stack headed by head, front first. Cursors cannot
// outlive the read lock, so iteration always goes through a copy.
func (s *Pool[T]) Values(head pool.Handle) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Collect(head)
}

// View runs fn with shared access to the underlying pool. fn must not
// mutate it or retain it.
func (s *Pool[T]) View(fn func(p *pool.Pool[T]) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.p)
}

// Do runs fn with exclusive access to the underlying pool, so a batch of
// operations is atomic with respect to other callers. fn must not retain p.
func (s *Pool[T]) Do(fn func(p *pool.Pool[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.p)
}
