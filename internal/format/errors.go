package format

import "errors"

var (
	// ErrSignatureMismatch indicates a file did not start with Signature.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrChecksum indicates the stored header checksum did not match.
	ErrChecksum = errors.New("format: header checksum mismatch")
	// ErrUnsupported indicates a layout version this build cannot read.
	ErrUnsupported = errors.New("format: unsupported version")
)
