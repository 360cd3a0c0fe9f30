package insts

import "github.com/sarchlab/rvsim/twos"

// fields consumes an instruction word low bit first.
type fields struct {
	bits uint32
}

// take returns the next n bits and drops them from the word.
func (f *fields) take(n uint) uint32 {
	v := f.bits & uint32(twos.MaskPrefix(n))
	f.bits >>= n
	return v
}

func (f *fields) reg() uint8 {
	return uint8(f.take(5))
}

func (f *fields) funct3() uint8 {
	return uint8(f.take(3))
}

type decodeFunc func(f *fields) Instruction

// Decoder decodes RV32 machine words into instructions.
type Decoder struct {
	table map[Opcode]decodeFunc
}

// NewDecoder creates a new RV32 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		table: map[Opcode]decodeFunc{
			OpcodeLUI:    decodeLUI,
			OpcodeAUIPC:  decodeAUIPC,
			OpcodeJAL:    decodeJAL,
			OpcodeJALR:   decodeJALR,
			OpcodeBranch: decodeBranch,
			OpcodeOpImm:  decodeOpImm,
			OpcodeLoad:   decodeLoad,
			OpcodeStore:  decodeStore,
			OpcodeSystem: decodeSystem,
		},
	}
}

// Decode decodes a 32-bit instruction word. Words with an unknown opcode
// yield a *DecodeError.
func (d *Decoder) Decode(word uint32) (Instruction, error) {
	f := &fields{bits: word}
	opcode := Opcode(f.take(7))

	decode, ok := d.table[opcode]
	if !ok {
		return nil, &DecodeError{Word: word, Opcode: opcode}
	}

	return decode(f), nil
}

// Format: imm[31:12] | rd | opcode
func decodeLUI(f *fields) Instruction {
	rd := f.reg()
	imm := f.take(20)
	return LUI{Rd: rd, Imm: imm}
}

// Format: imm[31:12] | rd | opcode
func decodeAUIPC(f *fields) Instruction {
	rd := f.reg()
	imm := f.take(20)
	return AUIPC{Rd: rd, Imm: imm}
}

// Format: imm[20] | imm[10:1] | imm[11] | imm[19:12] | rd | opcode
func decodeJAL(f *fields) Instruction {
	rd := f.reg()
	imm19to12 := f.take(8)
	imm11 := f.take(1)
	imm10to1 := f.take(10)
	imm20 := f.take(1)

	offset := imm10to1 | imm11<<10 | imm19to12<<11 | imm20<<19

	return JAL{Rd: rd, Offset: offset}
}

// Format: imm[11:0] | rs1 | funct3 | rd | opcode
func decodeJALR(f *fields) Instruction {
	rd := f.reg()
	funct3 := f.funct3()
	rs1 := f.reg()
	imm := f.take(12)
	return JALR{Rd: rd, Funct3: funct3, Rs1: rs1, Offset: imm}
}

// Format: imm[12] | imm[10:5] | rs2 | rs1 | funct3 | imm[4:1] | imm[11] | opcode
func decodeBranch(f *fields) Instruction {
	imm11 := f.take(1)
	imm4to1 := f.take(4)
	funct3 := f.funct3()
	rs1 := f.reg()
	rs2 := f.reg()
	imm10to5 := f.take(6)
	imm12 := f.take(1)

	offset := imm4to1 | imm10to5<<4 | imm11<<10 | imm12<<11

	return Branch{Offset: offset, Funct3: funct3, Rs1: rs1, Rs2: rs2}
}

// Format: imm[11:0] | rs1 | funct3 | rd | opcode
func decodeOpImm(f *fields) Instruction {
	rd := f.reg()
	funct3 := f.funct3()
	rs1 := f.reg()
	imm := f.take(12)
	return OpImm{Rd: rd, Funct3: funct3, Rs1: rs1, Imm: imm}
}

// Format: imm[11:0] | rs1 | funct3 | rd | opcode
func decodeLoad(f *fields) Instruction {
	rd := f.reg()
	funct3 := f.funct3()
	rs1 := f.reg()
	imm := f.take(12)
	return Load{Rd: rd, Funct3: funct3, Rs1: rs1, Imm: imm}
}

// Format: imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | opcode
func decodeStore(f *fields) Instruction {
	imm4to0 := f.take(5)
	funct3 := f.funct3()
	rs1 := f.reg()
	rs2 := f.reg()
	imm11to5 := f.take(7)
	return Store{Funct3: funct3, Rs1: rs1, Rs2: rs2, Imm: imm4to0 | imm11to5<<5}
}

// Format: funct12 | rs1 | funct3 | rd | opcode
// Only funct12 is meaningful for the implemented calls.
func decodeSystem(f *fields) Instruction {
	_ = f.reg()
	_ = f.funct3()
	_ = f.reg()
	funct12 := f.take(12)
	return System{Funct12: uint16(funct12)}
}
