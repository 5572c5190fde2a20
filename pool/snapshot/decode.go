package snapshot

import (
	"fmt"
	"io"

	"github.com/joshuapare/stackpool/internal/buf"
	"github.com/joshuapare/stackpool/internal/format"
	"github.com/joshuapare/stackpool/pool"
	"github.com/joshuapare/stackpool/pool/verify"
)

// Decode parses a snapshot. data is not retained.
func Decode[T any](data []byte, c Codec[T], opts Options) (*Snapshot[T], error) {
	limit := opts.MaxNodes
	if limit <= 0 || limit > pool.MaxNodes {
		limit = pool.MaxNodes
	}

	hdr, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	slots, capacity := int(hdr.SlotCount), int(hdr.Capacity)
	if err := buf.CheckCount(slots, limit); err != nil {
		return nil, fmt.Errorf("%w: slot count: %s", ErrCorrupt, err.Error())
	}
	if err := buf.CheckCount(capacity, limit); err != nil {
		return nil, fmt.Errorf("%w: capacity: %s", ErrCorrupt, err.Error())
	}
	if capacity < slots {
		return nil, fmt.Errorf("%w: capacity %d below slot count %d", ErrCorrupt, capacity, slots)
	}
	maxNodes := int(hdr.MaxNodes)
	if maxNodes != 0 {
		if err := buf.CheckCount(maxNodes, pool.MaxNodes); err != nil {
			return nil, fmt.Errorf("%w: slot cap: %s", ErrCorrupt, err.Error())
		}
		if slots > maxNodes {
			return nil, fmt.Errorf("%w: %d slots exceed cap %d", ErrCorrupt, slots, maxNodes)
		}
		capacity = min(capacity, maxNodes)
	}
	// The stored capacity is a hint bounded by the slot table.
	capacity = min(capacity, max(2*slots, CapacityFloor))

	r := reader{data: data, off: format.HeaderSize}
	if err := r.fits(int(hdr.StackCount), format.StackEntryFixedSize); err != nil {
		return nil, fmt.Errorf("stack table: %w", err)
	}

	stacks := make(map[string]pool.Handle, hdr.StackCount)
	for i := range int(hdr.StackCount) {
		n, err := r.u16()
		if err != nil {
			return nil, fmt.Errorf("stack %d: %w", i, err)
		}
		name, err := r.bytes(int(n))
		if err != nil {
			return nil, fmt.Errorf("stack %d name: %w", i, err)
		}
		head, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("stack %d head: %w", i, err)
		}
		key := string(name)
		if err := checkName(key); err != nil {
			return nil, fmt.Errorf("%w: stack %d: %w", ErrCorrupt, i, err)
		}
		if _, dup := stacks[key]; dup {
			return nil, fmt.Errorf("%w: duplicate stack %q", ErrCorrupt, key)
		}
		if err := buf.CheckHandle(head, slots, false); err != nil {
			return nil, fmt.Errorf("%w: stack %q head: %s", ErrCorrupt, key, err.Error())
		}
		stacks[key] = pool.Handle(head)
	}

	if err := r.fits(slots, format.SlotEntryFixedSize); err != nil {
		return nil, fmt.Errorf("slot table: %w", err)
	}
	nodes := make([]pool.Node[T], slots)
	for i := range nodes {
		next, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i+1, err)
		}
		n, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i+1, err)
		}
		raw, err := r.bytes(int(n))
		if err != nil {
			return nil, fmt.Errorf("slot %d value: %w", i+1, err)
		}
		v, err := c.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d value: %w", ErrCorrupt, i+1, err)
		}
		nodes[i] = pool.Node[T]{Value: v, Next: pool.Handle(next)}
	}

	var counters [6]int
	for i := range counters {
		v, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		counters[i] = int(v)
	}
	if r.off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(data)-r.off)
	}

	restore := pool.Restore[T]
	if opts.Unchecked {
		restore = pool.RestoreRaw[T]
	}
	p, err := restore(pool.State[T]{
		Nodes:    nodes,
		FreeHead: pool.Handle(hdr.FreeHead),
		Capacity: capacity,
		MaxNodes: maxNodes,
		Stats: pool.Stats{
			Pushes:     counters[0],
			Pops:       counters[1],
			Appends:    counters[2],
			Reuses:     counters[3],
			FreeStacks: counters[4],
			Grows:      counters[5],
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	s := &Snapshot[T]{Pool: p, Stacks: stacks}
	heads := s.Heads()
	switch {
	case opts.Unchecked:
		return s, nil
	case opts.Lenient:
		err = verify.Stacks(p, heads...)
	default:
		err = verify.AllInvariants(p, heads...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return s, nil
}

// Read decodes a snapshot from r.
func Read[T any](r io.Reader, c Codec[T], opts Options) (*Snapshot[T], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data, c, opts)
}

// reader walks a snapshot buffer with bounds checks.
type reader struct {
	data []byte
	off  int
}

func (r *reader) bytes(n int) ([]byte, error) {
	b, ok := buf.Slice(r.data, r.off, n)
	if !ok {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", format.ErrTruncated, n, r.off, len(r.data)-r.off)
	}
	r.off += n
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return format.ReadU16(b, 0), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return format.ReadU32(b, 0), nil
}

// fits reports whether count entries of at least size bytes can remain.
func (r *reader) fits(count, size int) error {
	need, ok := buf.MulOverflowSafe(count, size)
	if !ok || !buf.Has(r.data, r.off, need) {
		return fmt.Errorf("%w: %d entries at offset %d", format.ErrTruncated, count, r.off)
	}
	return nil
}
