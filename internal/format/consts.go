// Package format holds the on-disk layout of stackpool snapshot files and
// the little-endian helpers used to read and write it.
package format

// Signature is the four-byte magic at the start of every snapshot file.
// Layout:
//
//	0x00  'S' 'P' 'O' 'L'
var Signature = []byte{'S', 'P', 'O', 'L'}

const (
	// Version is the current snapshot layout version.
	Version = 1

	// SignatureSize is the length of Signature in bytes.
	SignatureSize = 4

	// HeaderSize is the size of the fixed snapshot header in bytes.
	HeaderSize = 0x20

	// Header field offsets.
	VersionOffset    = 0x04
	SlotCountOffset  = 0x08
	FreeHeadOffset   = 0x0C
	StackCountOffset = 0x10
	CapacityOffset   = 0x14
	MaxNodesOffset   = 0x18
	ChecksumOffset   = 0x1C

	// StackEntryFixedSize is the fixed part of a stack table entry:
	// u16 name length followed by u32 head. The name bytes sit between them.
	StackEntryFixedSize = 2 + 4

	// SlotEntryFixedSize is the fixed part of a slot table entry:
	// u32 next followed by u32 value length, then the value bytes.
	SlotEntryFixedSize = 4 + 4

	// StatsSize is the trailer holding six u32 pool counters:
	// pushes, pops, appends, reuses, free stacks, grows.
	StatsSize = 6 * 4

	// MaxStackNameLen is the longest stack name the u16 length field can hold.
	MaxStackNameLen = 0xFFFF
)
