package emu_test

import (
	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/insts"
)

// Instruction encoders used by the specs.

func encodeU(opcode insts.Opcode, rd uint8, imm uint32) uint32 {
	return (imm&0xFFFFF)<<12 | uint32(rd)<<7 | uint32(opcode)
}

func encodeI(opcode insts.Opcode, rd, funct3, rs1 uint8, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | uint32(rs1)<<15 | uint32(funct3)<<12 | uint32(rd)<<7 | uint32(opcode)
}

func encodeS(funct3, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm)
	return (u>>5&0x7F)<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | uint32(funct3)<<12 |
		(u&0x1F)<<7 | uint32(insts.OpcodeStore)
}

func encodeB(funct3, rs1, rs2 uint8, offset int32) uint32 {
	u := uint32(offset)
	return (u>>12&0x1)<<31 | (u>>5&0x3F)<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		uint32(funct3)<<12 | (u>>1&0xF)<<8 | (u>>11&0x1)<<7 | uint32(insts.OpcodeBranch)
}

func encodeJ(rd uint8, offset int32) uint32 {
	u := uint32(offset)
	return (u>>20&0x1)<<31 | (u>>1&0x3FF)<<21 | (u>>11&0x1)<<20 | (u>>12&0xFF)<<12 |
		uint32(rd)<<7 | uint32(insts.OpcodeJAL)
}

func encodeADDI(rd, rs1 uint8, imm int32) uint32 {
	return encodeI(insts.OpcodeOpImm, rd, insts.Funct3ADDI, rs1, imm)
}

func encodeBEQ(rs1, rs2 uint8, offset int32) uint32 {
	return encodeB(insts.Funct3BEQ, rs1, rs2, offset)
}

func encodeBNE(rs1, rs2 uint8, offset int32) uint32 {
	return encodeB(insts.Funct3BNE, rs1, rs2, offset)
}

func encodeLW(rd, rs1 uint8, imm int32) uint32 {
	return encodeI(insts.OpcodeLoad, rd, insts.Funct3LW, rs1, imm)
}

func encodeSW(rs1, rs2 uint8, imm int32) uint32 {
	return encodeS(insts.Funct3SW, rs1, rs2, imm)
}

const (
	encECALL  uint32 = 0x00000073
	encEBREAK uint32 = 0x00100073
)

// newProgram places words at consecutive addresses from base, with the
// same 16 bytes of padding the image loader adds.
func newProgram(base uint32, words ...uint32) *emu.Memory {
	mem := emu.NewMemory(base, uint32(len(words))*4+16)
	for i, w := range words {
		if err := mem.WriteWord(w, base+uint32(i)*4); err != nil {
			panic(err)
		}
	}
	return mem
}
