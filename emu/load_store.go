// Package emu provides functional RV32 emulation.
package emu

import "github.com/sarchlab/rvsim/twos"

// LoadStoreUnit implements RV32 load and store operations.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  Bus
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory Bus) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// EffectiveAddress returns rs1 + sext(imm) wrapped to 32 bits.
func (lsu *LoadStoreUnit) EffectiveAddress(rs1 uint8, imm uint32) uint32 {
	base := int64(lsu.regFile.ReadReg(rs1))
	return twos.Wrap32(base + int64(twos.SignExtend32(imm, 12)))
}

// LW performs a word load: rd = mem[rs1 + sext(imm)]
func (lsu *LoadStoreUnit) LW(rd, rs1 uint8, imm uint32) error {
	value, err := lsu.memory.ReadWord(lsu.EffectiveAddress(rs1, imm))
	if err != nil {
		return err
	}
	lsu.regFile.WriteRegU(rd, value)
	return nil
}

// SW performs a word store: mem[rs1 + sext(imm)] = rs2
func (lsu *LoadStoreUnit) SW(rs1, rs2 uint8, imm uint32) error {
	return lsu.memory.WriteWord(lsu.regFile.ReadRegU(rs2), lsu.EffectiveAddress(rs1, imm))
}
