package snapshot

import "errors"

var (
	// ErrCorrupt indicates a snapshot whose contents are inconsistent.
	ErrCorrupt = errors.New("snapshot: corrupt")
	// ErrStackName indicates an empty, oversized or duplicate stack name.
	ErrStackName = errors.New("snapshot: invalid stack name")
	// ErrTooLarge indicates a pool or value that does not fit the u32 fields.
	ErrTooLarge = errors.New("snapshot: too large")
)
