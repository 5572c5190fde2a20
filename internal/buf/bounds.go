// Package buf contains overflow-safe arithmetic and range checks shared by the
// pool core and the snapshot codec.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative values, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckHandle validates a handle against a pool holding n slots.
//
// With strict = false the accepted range is [0, n]: the zero handle is the
// empty-stack sentinel and is always accepted. With strict = true the range is
// (0, n]: the handle must address a real slot.
func CheckHandle(h uint32, n int, strict bool) error {
	if strict && h == 0 {
		return fmt.Errorf("handle must be > 0 and <= %d, got %d", n, h)
	}
	if uint64(h) > uint64(max(n, 0)) {
		if strict {
			return fmt.Errorf("handle must be > 0 and <= %d, got %d", n, h)
		}
		return fmt.Errorf("handle must be >= 0 and <= %d, got %d", n, h)
	}
	return nil
}

// CheckCount validates a requested element count against an upper limit.
func CheckCount(n, limit int) error {
	if n < 0 {
		return fmt.Errorf("negative count: %d", n)
	}
	if n > limit {
		return fmt.Errorf("count %d exceeds limit %d", n, limit)
	}
	return nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
