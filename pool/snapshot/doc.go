// Package snapshot persists a pool together with its named stack heads.
//
// # File Layout
//
// Snapshot files are little-endian:
//
//	header       32 bytes, see internal/format.Header
//	stack table  per stack: u16 name length, name bytes, u32 head
//	slot table   per slot:  u32 next, u32 value length, value bytes
//	stats        six u32 counters
//
// Values are serialized by a Codec. Stacks are written in name order, so
// encoding the same state twice yields identical bytes.
//
// # Validation
//
// Decode rejects truncated input, bad signatures, checksum mismatches,
// out-of-range handles and trailing bytes, then runs the invariant checks of
// package verify over the restored heads. By default every slot must be
// accounted for by a named stack or the free list; Options.Lenient relaxes
// that for owners who persist only some of their stacks, and
// Options.Unchecked skips the chain checks entirely for diagnostic tools.
//
// The stored capacity is honored up to CapacityFloor or twice the slot count,
// whichever is larger. The slot cap set by pool.Options.MaxNodes is persisted.
//
// # Durability
//
// Save writes to a temporary file in the destination directory, flushes it,
// renames it over the destination and flushes the directory. Load maps the
// file read-only and copies everything it keeps.
package snapshot
