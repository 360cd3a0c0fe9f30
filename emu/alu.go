// Package emu provides functional RV32 emulation.
package emu

import "github.com/sarchlab/rvsim/twos"

// ALU implements the RV32 integer operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LUI loads an upper immediate: rd = sext(imm << 12)
func (a *ALU) LUI(rd uint8, imm uint32) {
	a.regFile.WriteReg(rd, twos.SignExtend32(imm<<12, 32))
}

// AUIPC adds an upper immediate to the PC: rd = pc + sext(imm << 12)
func (a *ALU) AUIPC(rd uint8, imm uint32) {
	offset := twos.SignExtend32(imm<<12, 32)
	a.regFile.WriteRegU(rd, twos.Wrap32(int64(a.regFile.PC)+int64(offset)))
}

// ADDI performs addition with a 12-bit immediate: rd = rs1 + sext(imm)
func (a *ALU) ADDI(rd, rs1 uint8, imm uint32) {
	op1 := int64(a.regFile.ReadReg(rs1))
	op2 := int64(twos.SignExtend32(imm, 12))
	a.regFile.WriteRegU(rd, twos.Wrap32(op1+op2))
}

// SLTI sets rd to 1 if rs1 < sext(imm) as signed values, else 0.
func (a *ALU) SLTI(rd, rs1 uint8, imm uint32) {
	if a.regFile.ReadReg(rs1) < twos.SignExtend32(imm, 12) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// SLTIU sets rd to 1 if rs1 < sext(imm) as unsigned values, else 0.
func (a *ALU) SLTIU(rd, rs1 uint8, imm uint32) {
	if a.regFile.ReadRegU(rs1) < uint32(twos.SignExtend32(imm, 12)) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}
