// Package emu provides functional RV32 emulation.
package emu

import "fmt"

// NumRegisters is the number of integer registers.
const NumRegisters = 32

// ABI register indices used by the simulator.
const (
	RegZero uint8 = 0
	RegRA   uint8 = 1
	RegSP   uint8 = 2
	RegA0   uint8 = 10
	RegA5   uint8 = 15
)

// RegFile represents the RV32 register file.
// It contains 32 integer registers (x0-x31) and the program counter (PC).
type RegFile struct {
	// X holds the integer registers. X[0] is hardwired to zero; the
	// emulator clears it after every instruction.
	X [NumRegisters]int32

	// PC is the program counter.
	PC uint32
}

// ReadReg reads a register value. Register 0 always reads as 0.
func (r *RegFile) ReadReg(reg uint8) int32 {
	if reg == RegZero || reg >= NumRegisters {
		return 0
	}
	return r.X[reg]
}

// ReadRegU reads a register value as an unsigned word.
func (r *RegFile) ReadRegU(reg uint8) uint32 {
	return uint32(r.ReadReg(reg))
}

// WriteReg writes a value to a register. Writes to register 0 are discarded.
func (r *RegFile) WriteReg(reg uint8, value int32) {
	if reg == RegZero || reg >= NumRegisters {
		return
	}
	r.X[reg] = value
}

// WriteRegU writes an unsigned word to a register.
func (r *RegFile) WriteRegU(reg uint8, value uint32) {
	r.WriteReg(reg, int32(value))
}

// ClearZero forces register 0 back to 0.
func (r *RegFile) ClearZero() {
	r.X[RegZero] = 0
}

// SyscallParams returns a0-a5.
func (r *RegFile) SyscallParams() [6]uint32 {
	var params [6]uint32
	for i := range params {
		params[i] = r.ReadRegU(RegA0 + uint8(i))
	}
	return params
}

// RegName returns the ABI name of register reg.
func RegName(reg uint8) string {
	if int(reg) < len(abiNames) {
		return abiNames[reg]
	}
	return fmt.Sprintf("x%d", reg)
}

var abiNames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}
