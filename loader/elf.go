package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
	"math"
	"os"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// LoadELF parses a 32-bit little-endian RISC-V ELF executable and returns a
// Program ready for loading into memory.
func LoadELF(path string) (*Program, error) {
	// Open the ELF file
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Validate ELF class (must be 32-bit)
	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file")
	}

	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file")
	}

	// Validate machine type (must be RISC-V)
	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("not a RISC-V ELF file (machine type: %v)", f.Machine)
	}

	prog := &Program{
		EntryPoint: uint32(f.Entry),
	}

	// Load all PT_LOAD segments
	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		if phdr.Vaddr+phdr.Memsz > math.MaxUint32+1 {
			return nil, fmt.Errorf("segment at 0x%x exceeds the 32-bit address space", phdr.Vaddr)
		}

		// Read segment data
		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		// Convert ELF flags to our segment flags
		var flags SegmentFlags
		if phdr.Flags&elf.PF_X != 0 {
			flags |= SegmentFlagExecute
		}
		if phdr.Flags&elf.PF_W != 0 {
			flags |= SegmentFlagWrite
		}
		if phdr.Flags&elf.PF_R != 0 {
			flags |= SegmentFlagRead
		}

		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: uint32(phdr.Vaddr),
			Data:     data,
			MemSize:  uint32(phdr.Memsz),
			Flags:    flags,
		})
	}

	return prog, nil
}

// Load reads the program at path, detecting ELF files by their magic number
// and treating anything else as a hex image.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program: %w", err)
	}

	magic := make([]byte, len(elfMagic))
	n, _ := io.ReadFull(f, magic)
	_ = f.Close()

	if n == len(elfMagic) && bytes.Equal(magic, elfMagic) {
		return LoadELF(path)
	}
	return LoadImage(path)
}
