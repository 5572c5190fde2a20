package snapshot

import (
	"fmt"
	"io"
	"math"

	"github.com/joshuapare/stackpool/internal/format"
	"github.com/joshuapare/stackpool/pool"
	"github.com/joshuapare/stackpool/pool/verify"
)

// Encode serializes s. The pool must pass the free-list and stack checks of
// package verify for the named heads.
func Encode[T any](s *Snapshot[T], c Codec[T]) ([]byte, error) {
	names := s.Names()
	heads := s.Heads()
	for _, name := range names {
		if err := checkName(name); err != nil {
			return nil, err
		}
	}
	if err := verify.Stacks(s.Pool, heads...); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	st := s.Pool.State()
	if uint64(st.Capacity) > math.MaxUint32 {
		return nil, fmt.Errorf("encode: %w: capacity %d", ErrTooLarge, st.Capacity)
	}

	out := make([]byte, format.HeaderSize)
	format.Header{
		Version:    format.Version,
		SlotCount:  uint32(len(st.Nodes)),
		FreeHead:   uint32(st.FreeHead),
		StackCount: uint32(len(names)),
		Capacity:   uint32(st.Capacity),
		MaxNodes:   uint32(st.MaxNodes),
	}.Encode(out)

	for i, name := range names {
		out = format.AppendU16(out, uint16(len(name)))
		out = append(out, name...)
		out = format.AppendU32(out, uint32(heads[i]))
	}

	for i, n := range st.Nodes {
		b, err := c.Encode(n.Value)
		if err != nil {
			return nil, fmt.Errorf("encode slot %d: %w", i+1, err)
		}
		if uint64(len(b)) > math.MaxUint32 {
			return nil, fmt.Errorf("encode slot %d: %w: value is %d bytes", i+1, ErrTooLarge, len(b))
		}
		out = format.AppendU32(out, uint32(n.Next))
		out = format.AppendU32(out, uint32(len(b)))
		out = append(out, b...)
	}

	return appendStats(out, st.Stats), nil
}

// Write encodes s to w.
func Write[T any](w io.Writer, s *Snapshot[T], c Codec[T]) error {
	b, err := Encode(s, c)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func appendStats(out []byte, st pool.Stats) []byte {
	for _, v := range []int{st.Pushes, st.Pops, st.Appends, st.Reuses, st.FreeStacks, st.Grows} {
		out = format.AppendU32(out, saturate(v))
	}
	return out
}

func saturate(v int) uint32 {
	switch {
	case v < 0:
		return 0
	case uint64(v) > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
