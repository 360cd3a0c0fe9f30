package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseImage reads a hex program image. Each line holds an address and a
// 32-bit word, for example
//
//	80000000: 00000093
//
// The colon is optional. Lines that do not start with two hexadecimal
// numbers are ignored. Execution starts at the lowest address.
func ParseImage(r io.Reader) (*Program, error) {
	prog := &Program{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		address, value, ok := parseImageLine(scanner.Text())
		if !ok {
			continue
		}

		data := make([]byte, 4)
		binary.LittleEndian.PutUint32(data, value)

		if len(prog.Segments) == 0 || address < prog.EntryPoint {
			prog.EntryPoint = address
		}
		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: address,
			Data:     data,
			MemSize:  4,
			Flags:    SegmentFlagRead | SegmentFlagWrite | SegmentFlagExecute,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if len(prog.Segments) == 0 {
		return nil, ErrEmptyProgram
	}

	return prog, nil
}

func parseImageLine(line string) (address, value uint32, ok bool) {
	tokens := strings.Fields(strings.ReplaceAll(line, ":", " "))
	if len(tokens) < 2 {
		return 0, 0, false
	}

	a, err := parseHex(tokens[0])
	if err != nil {
		return 0, 0, false
	}
	v, err := parseHex(tokens[1])
	if err != nil {
		return 0, 0, false
	}

	return a, v, true
}

func parseHex(token string) (uint32, error) {
	token = strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
	v, err := strconv.ParseUint(token, 16, 32)
	return uint32(v), err
}

// LoadImage parses the hex image at path.
func LoadImage(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseImage(f)
}
