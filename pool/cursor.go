package pool

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Cursor walks one logical stack from its head to the Sentinel. It never
// mutates the pool. A cursor is invalidated by any structural mutation of the
// pool it reads (Push, Pop, FreeStack, SetNext); using it afterwards fails
// with ErrStaleCursor.
type Cursor[T any] struct {
	pool  *Pool[T]
	cur   Handle
	epoch uint64
}

// Begin returns a cursor positioned at head.
func (p *Pool[T]) Begin(head Handle) (*Cursor[T], error) {
	if err := p.check(head, false); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &Cursor[T]{pool: p, cur: head, epoch: p.epoch}, nil
}

// End returns the cursor every walk finishes at.
func (p *Pool[T]) End() *Cursor[T] {
	return &Cursor[T]{pool: p, cur: Sentinel, epoch: p.epoch}
}

// Handle returns the handle the cursor currently sits on.
func (c *Cursor[T]) Handle() Handle { return c.cur }

// Done reports whether the cursor reached the Sentinel.
func (c *Cursor[T]) Done() bool { return c.cur == Sentinel }

// Equal reports whether both cursors read the same pool at the same handle.
func (c *Cursor[T]) Equal(o *Cursor[T]) bool {
	return c.pool == o.pool && c.cur == o.cur
}

// Value returns the value at the current handle. It fails with
// ErrInvalidHandle at the end position.
func (c *Cursor[T]) Value() (T, error) {
	if err := c.valid(); err != nil {
		var zero T
		return zero, err
	}
	return c.pool.Value(c.cur)
}

// Advance moves the cursor to the next node. It fails with ErrInvalidHandle
// at the end position.
func (c *Cursor[T]) Advance() error {
	if err := c.valid(); err != nil {
		return err
	}
	next, err := c.pool.Next(c.cur)
	if err != nil {
		return fmt.Errorf("advance: %w", err)
	}
	c.cur = next
	return nil
}

// Next returns the current value and advances. It returns io.EOF once the
// cursor has reached the Sentinel.
func (c *Cursor[T]) Next() (T, error) {
	var zero T
	if err := c.valid(); err != nil {
		return zero, err
	}
	if c.cur == Sentinel {
		return zero, io.EOF
	}
	v, err := c.Value()
	if err != nil {
		return zero, err
	}
	if err := c.Advance(); err != nil {
		return zero, err
	}
	return v, nil
}

func (c *Cursor[T]) valid() error {
	if c.epoch != c.pool.epoch {
		return ErrStaleCursor
	}
	return nil
}

// All yields the handle and value of every node from head to the Sentinel.
// An invalid head yields nothing. Mutating the pool from the loop body panics
// with ErrStaleCursor on the next step.
func (p *Pool[T]) All(head Handle) iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		c, err := p.Begin(head)
		if err != nil {
			return
		}
		for !c.Done() {
			h := c.cur
			v, err := c.Value()
			if err != nil {
				panic(err)
			}
			if !yield(h, v) {
				return
			}
			if err := c.Advance(); err != nil {
				panic(err)
			}
		}
	}
}

// Values yields every value from head to the Sentinel. See All.
func (p *Pool[T]) Values(head Handle) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range p.All(head) {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect returns the values of the stack headed by head, front first.
func (p *Pool[T]) Collect(head Handle) ([]T, error) {
	c, err := p.Begin(head)
	if err != nil {
		return nil, err
	}
	var out []T
	for {
		v, err := c.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if len(out) > p.Len() {
			return nil, fmt.Errorf("collect: %w: chain from %d does not terminate", ErrInvalidHandle, head)
		}
	}
}
