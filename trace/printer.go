// Package trace prints per-cycle diagnostics for an emulator run.
package trace

import (
	"fmt"
	"io"

	"github.com/sarchlab/rvsim/emu"
)

// regsPerRow is the number of registers printed on each dump line.
const regsPerRow = 4

// Printer writes a line per executed cycle and, optionally, a register dump.
type Printer struct {
	w         io.Writer
	registers bool
	err       error
}

// NewPrinter creates a Printer writing to w. When registers is true every
// cycle is followed by a dump of all registers and the pc.
func NewPrinter(w io.Writer, registers bool) *Printer {
	return &Printer{w: w, registers: registers}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

// Hook returns an emulator trace hook that prints every event.
func (p *Printer) Hook() emu.TraceHook {
	return p.Print
}

// Print writes one event.
func (p *Printer) Print(ev emu.TraceEvent) {
	if ev.Skipped {
		p.printf("%08x: %08x  <empty>\n", ev.PC, ev.Word)
		return
	}

	p.printf("%08x: %08x  %-24v opcode=%v\n", ev.PC, ev.Word, ev.Inst, ev.Inst.Opcode())
	if p.registers && ev.RegFile != nil {
		p.Registers(ev.RegFile)
	}
}

// Registers dumps all registers and the pc.
func (p *Printer) Registers(regFile *emu.RegFile) {
	for row := 0; row < emu.NumRegisters; row += regsPerRow {
		for col := 0; col < regsPerRow; col++ {
			reg := uint8(row + col)
			sep := "  "
			if col == regsPerRow-1 {
				sep = "\n"
			}
			p.printf("%4s=%08x%s", emu.RegName(reg), regFile.ReadRegU(reg), sep)
		}
	}
	p.printf("  pc=%08x\n", regFile.PC)
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
