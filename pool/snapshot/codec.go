package snapshot

import (
	"encoding/json"
	"fmt"
)

// Codec converts slot values to and from bytes. Decode must not retain b:
// Load hands it memory that is unmapped once decoding finishes.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(b []byte) (T, error)
}

// StringCodec stores strings as raw bytes.
type StringCodec struct{}

func (StringCodec) Encode(v string) ([]byte, error) { return []byte(v), nil }

func (StringCodec) Decode(b []byte) (string, error) { return string(b), nil }

// JSONCodec stores values as JSON documents.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: %w", err)
	}
	return b, nil
}

func (JSONCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("json codec: %w", err)
	}
	return v, nil
}
