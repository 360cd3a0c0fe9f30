// Package emu provides functional RV32 emulation.
package emu

import "github.com/sarchlab/rvsim/twos"

// LinkMode selects how JAL computes its link value.
type LinkMode uint8

const (
	// LinkFromTarget writes the updated PC plus 4 into rd. This is the
	// default.
	LinkFromTarget LinkMode = iota

	// LinkFromReturnAddress writes the address of the instruction after the
	// JAL into rd, as standard RISC-V does.
	LinkFromReturnAddress
)

func (m LinkMode) String() string {
	switch m {
	case LinkFromTarget:
		return "target"
	case LinkFromReturnAddress:
		return "return-address"
	default:
		return "unknown"
	}
}

// BranchUnit implements RV32 branch and jump operations.
type BranchUnit struct {
	regFile  *RegFile
	linkMode LinkMode
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile, linkMode LinkMode) *BranchUnit {
	return &BranchUnit{regFile: regFile, linkMode: linkMode}
}

// relative returns pc + offset wrapped to 32 bits.
func (b *BranchUnit) relative(offset int32) uint32 {
	return twos.Wrap32(int64(b.regFile.PC) + int64(offset))
}

// JAL jumps to pc + sext(offset)*2 and writes a link value into rd.
// offset is the 20-bit field in half-word units.
func (b *BranchUnit) JAL(rd uint8, offset uint32) {
	returnAddr := twos.Wrap32(int64(b.regFile.PC) + WordSize)
	target := b.relative(twos.SignExtend32(offset, 20) * 2)

	b.regFile.PC = target

	switch b.linkMode {
	case LinkFromReturnAddress:
		b.regFile.WriteRegU(rd, returnAddr)
	default:
		b.regFile.WriteRegU(rd, twos.Wrap32(int64(b.regFile.PC)+WordSize))
	}
}

// JALR jumps to (rs1 + sext(offset)) with the low bit cleared and writes the
// return address into rd.
func (b *BranchUnit) JALR(rd, rs1 uint8, offset uint32) {
	// Read the base first in case rd == rs1.
	base := int64(b.regFile.ReadReg(rs1))
	target := twos.Wrap32(base+int64(twos.SignExtend32(offset, 12))) &^ 1
	returnAddr := twos.Wrap32(int64(b.regFile.PC) + WordSize)

	b.regFile.PC = target
	b.regFile.WriteRegU(rd, returnAddr)
}

// BranchIf moves the PC to pc + sext(offset)*2 when taken, and to the next
// instruction otherwise. offset is the 12-bit field in half-word units.
func (b *BranchUnit) BranchIf(taken bool, offset uint32) {
	if taken {
		b.regFile.PC = b.relative(twos.SignExtend32(offset, 12) * 2)
		return
	}
	b.regFile.PC = b.relative(WordSize)
}

// BEQ branches when rs1 == rs2.
func (b *BranchUnit) BEQ(rs1, rs2 uint8, offset uint32) {
	b.BranchIf(b.regFile.ReadReg(rs1) == b.regFile.ReadReg(rs2), offset)
}

// BNE branches when rs1 != rs2.
func (b *BranchUnit) BNE(rs1, rs2 uint8, offset uint32) {
	b.BranchIf(b.regFile.ReadReg(rs1) != b.regFile.ReadReg(rs2), offset)
}
