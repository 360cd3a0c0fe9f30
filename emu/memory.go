package emu

import "encoding/binary"

// WordSize is the width of a memory word and of an instruction in bytes.
const WordSize = 4

// Bus is the memory interface the executor depends on.
type Bus interface {
	ReadWord(address uint32) (uint32, error)
	WriteWord(value uint32, address uint32) error
}

// Memory is a flat, byte-addressable store covering [start, start+size).
// Words are little-endian.
type Memory struct {
	start uint32
	data  []byte
}

// NewMemory creates a zero-filled memory of size bytes based at start.
func NewMemory(start, size uint32) *Memory {
	return &Memory{
		start: start,
		data:  make([]byte, size),
	}
}

// Start returns the lowest address backed by the memory.
func (m *Memory) Start() uint32 {
	return m.start
}

// Size returns the number of bytes backed by the memory.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Contains reports whether a full word at address is backed by the memory.
func (m *Memory) Contains(address uint32) bool {
	_, ok := m.offset(address)
	return ok
}

// offset translates address to an index into data, checking that the whole
// word fits.
func (m *Memory) offset(address uint32) (uint64, bool) {
	if address < m.start {
		return 0, false
	}
	off := uint64(address - m.start)
	if off+WordSize > uint64(len(m.data)) {
		return 0, false
	}
	return off, true
}

func (m *Memory) boundsError(address uint32) error {
	return &MemoryBoundsError{Address: address, Start: m.start, Size: m.Size()}
}

// ReadWord reads the little-endian word at address.
func (m *Memory) ReadWord(address uint32) (uint32, error) {
	off, ok := m.offset(address)
	if !ok {
		return 0, m.boundsError(address)
	}
	return binary.LittleEndian.Uint32(m.data[off : off+WordSize]), nil
}

// WriteWord stores value as a little-endian word at address.
func (m *Memory) WriteWord(value uint32, address uint32) error {
	off, ok := m.offset(address)
	if !ok {
		return m.boundsError(address)
	}
	binary.LittleEndian.PutUint32(m.data[off:off+WordSize], value)
	return nil
}

// LoadBytes copies data into memory starting at address.
func (m *Memory) LoadBytes(address uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if address < m.start || uint64(address-m.start)+uint64(len(data)) > uint64(len(m.data)) {
		return m.boundsError(address)
	}
	copy(m.data[address-m.start:], data)
	return nil
}
