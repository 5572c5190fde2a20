package format

import (
	"errors"
	"testing"
)

func TestParseHeaderSuccess(t *testing.T) {
	buf := make([]byte, HeaderSize)
	Header{Version: Version, SlotCount: 12, FreeHead: 3, StackCount: 2, Capacity: 16, MaxNodes: 64}.Encode(buf)

	hdr, err := ParseHeader(buf)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.SlotCount != 12 || hdr.FreeHead != 3 {
		t.Fatalf("slot fields mismatch: %+v", hdr)
	}
	if hdr.StackCount != 2 || hdr.Capacity != 16 || hdr.MaxNodes != 64 {
		t.Fatalf("stack/capacity mismatch: %+v", hdr)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	buf := make([]byte, HeaderSize)
	Header{Version: Version}.Encode(buf)

	if _, err := ParseHeader(buf[:10]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncation error, got %v", err)
	}

	bad := append([]byte(nil), buf...)
	copy(bad, "XXXX")
	if _, err := ParseHeader(bad); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected signature error, got %v", err)
	}

	bad = append([]byte(nil), buf...)
	PutU32(bad, SlotCountOffset, 99)
	if _, err := ParseHeader(bad); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected checksum error, got %v", err)
	}

	future := make([]byte, HeaderSize)
	Header{Version: Version + 1}.Encode(future)
	if _, err := ParseHeader(future); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	b := make([]byte, 6)
	PutU16(b, 0, 0xBEEF)
	PutU32(b, 2, 0xDEADC0DE)
	if ReadU16(b, 0) != 0xBEEF || ReadU32(b, 2) != 0xDEADC0DE {
		t.Fatalf("unexpected bytes: % x", b)
	}

	out := AppendU32(AppendU16(nil, 1), 2)
	if len(out) != 6 || ReadU16(out, 0) != 1 || ReadU32(out, 2) != 2 {
		t.Fatalf("append mismatch: % x", out)
	}
}
