package format

import (
	"bytes"
	"fmt"
)

// Header is the fixed snapshot header.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'S' 'P' 'O' 'L'
//	 0x04    4    Layout version
//	 0x08    4    Slot count (backing-array length)
//	 0x0C    4    Free-list head handle
//	 0x10    4    Stack count
//	 0x14    4    Backing-array capacity
//	 0x18    4    Slot cap (0 = no cap beyond the u32 range)
//	 0x1C    4    XOR of the seven preceding dwords
type Header struct {
	Version    uint32
	SlotCount  uint32
	FreeHead   uint32
	StackCount uint32
	Capacity   uint32
	MaxNodes   uint32
}

// Encode writes h into the first HeaderSize bytes of b, including the checksum.
func (h Header) Encode(b []byte) {
	copy(b[:SignatureSize], Signature)
	PutU32(b, VersionOffset, h.Version)
	PutU32(b, SlotCountOffset, h.SlotCount)
	PutU32(b, FreeHeadOffset, h.FreeHead)
	PutU32(b, StackCountOffset, h.StackCount)
	PutU32(b, CapacityOffset, h.Capacity)
	PutU32(b, MaxNodesOffset, h.MaxNodes)
	PutU32(b, ChecksumOffset, Checksum(b))
}

// Checksum returns the XOR of the header dwords preceding the checksum field.
func Checksum(b []byte) uint32 {
	var sum uint32
	for off := 0; off < ChecksumOffset; off += 4 {
		sum ^= ReadU32(b, off)
	}
	return sum
}

// ParseHeader validates and extracts the fixed snapshot header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("snapshot header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:SignatureSize], Signature) {
		return Header{}, fmt.Errorf("snapshot header: %w", ErrSignatureMismatch)
	}
	if stored, calc := ReadU32(b, ChecksumOffset), Checksum(b); stored != calc {
		return Header{}, fmt.Errorf("snapshot header: %w (stored 0x%08X, calculated 0x%08X)", ErrChecksum, stored, calc)
	}
	h := Header{
		Version:    ReadU32(b, VersionOffset),
		SlotCount:  ReadU32(b, SlotCountOffset),
		FreeHead:   ReadU32(b, FreeHeadOffset),
		StackCount: ReadU32(b, StackCountOffset),
		Capacity:   ReadU32(b, CapacityOffset),
		MaxNodes:   ReadU32(b, MaxNodesOffset),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("snapshot header: %w: %d", ErrUnsupported, h.Version)
	}
	return h, nil
}
