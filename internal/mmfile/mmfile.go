// Package mmfile provides platform-specific helpers for reading snapshot
// files through a read-only memory mapping.
package mmfile

import "sync"

// Mapping is a read-only view of a file's contents. The bytes are only valid
// until Close.
type Mapping struct {
	data  []byte
	once  sync.Once
	unmap func([]byte) error
	err   error
}

// Bytes returns the mapped file contents.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the mapped length in bytes.
func (m *Mapping) Len() int { return len(m.data) }

// Close releases the mapping. Calling Close more than once is a no-op.
func (m *Mapping) Close() error {
	m.once.Do(func() {
		if m.unmap != nil && len(m.data) > 0 {
			m.err = m.unmap(m.data)
		}
		m.data = nil
	})
	return m.err
}
