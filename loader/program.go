// Package loader reads RV32 programs from hex images and ELF files.
package loader

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/rvsim/emu"
)

// TrailingPadding is the number of zero bytes reserved after the last loaded
// byte. For a word image this gives (last - first) + 16 bytes of memory.
const TrailingPadding = 12

// ErrEmptyProgram is returned when a program has nothing to load.
var ErrEmptyProgram = errors.New("program has no loadable data")

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// Segment represents a contiguous block of program data.
type Segment struct {
	// VirtAddr is the address where this segment should be loaded.
	VirtAddr uint32
	// Data contains the segment contents.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint32
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// End returns the address one past the segment.
func (s Segment) End() uint64 {
	size := uint64(s.MemSize)
	if n := uint64(len(s.Data)); n > size {
		size = n
	}
	return uint64(s.VirtAddr) + size
}

// Program represents a loaded program ready for execution.
type Program struct {
	// EntryPoint is the address where execution should begin.
	EntryPoint uint32
	// Segments contains all loadable segments, in load order.
	Segments []Segment
}

// Bounds returns the lowest loaded address and the memory size needed to
// hold every segment plus TrailingPadding.
func (p *Program) Bounds() (start uint32, size uint32, err error) {
	if len(p.Segments) == 0 {
		return 0, 0, ErrEmptyProgram
	}

	lo := uint64(math.MaxUint32)
	var hi uint64
	for _, seg := range p.Segments {
		lo = min(lo, uint64(seg.VirtAddr))
		hi = max(hi, seg.End())
	}

	total := hi - lo + TrailingPadding
	if total > math.MaxUint32 {
		return 0, 0, fmt.Errorf("program spans 0x%x bytes, more than a 32-bit memory", total)
	}

	return uint32(lo), uint32(total), nil
}

// NewMemory builds a flat memory holding every segment.
func (p *Program) NewMemory() (*emu.Memory, error) {
	start, size, err := p.Bounds()
	if err != nil {
		return nil, err
	}

	memory := emu.NewMemory(start, size)
	for _, seg := range p.Segments {
		if err := memory.LoadBytes(seg.VirtAddr, seg.Data); err != nil {
			return nil, fmt.Errorf("failed to load segment at 0x%x: %w", seg.VirtAddr, err)
		}
	}

	return memory, nil
}
