package insts

import (
	"fmt"

	"github.com/sarchlab/rvsim/twos"
)

// Instruction is a decoded RV32 instruction. The concrete type identifies
// the opcode class.
type Instruction interface {
	Opcode() Opcode
	String() string

	instruction()
}

// LUI loads a 20-bit immediate into the upper bits of Rd.
type LUI struct {
	Rd  uint8
	Imm uint32 // bits [31:12] of the result, unshifted
}

// AUIPC adds an upper immediate to the PC.
type AUIPC struct {
	Rd  uint8
	Imm uint32 // bits [31:12] of the offset, unshifted
}

// JAL jumps to a PC-relative target and links.
type JAL struct {
	Rd uint8
	// Offset is the 20-bit reassembled immediate in half-word units.
	Offset uint32
}

// JALR jumps to a register-relative target and links.
type JALR struct {
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Offset uint32 // raw 12-bit field
}

// Branch is a conditional PC-relative branch.
type Branch struct {
	// Offset is the 12-bit reassembled immediate in half-word units.
	Offset uint32
	Funct3 uint8
	Rs1    uint8
	Rs2    uint8
}

// OpImm is a register-immediate ALU operation.
type OpImm struct {
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Imm    uint32 // raw 12-bit field
}

// Load reads memory into Rd.
type Load struct {
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Imm    uint32 // raw 12-bit field
}

// Store writes Rs2 to memory.
type Store struct {
	Funct3 uint8
	Rs1    uint8
	Rs2    uint8
	Imm    uint32 // reassembled 12-bit field
}

// System is an environment call or other SYSTEM-class instruction.
type System struct {
	Funct12 uint16
}

func (LUI) instruction()    {}
func (AUIPC) instruction()  {}
func (JAL) instruction()    {}
func (JALR) instruction()   {}
func (Branch) instruction() {}
func (OpImm) instruction()  {}
func (Load) instruction()   {}
func (Store) instruction()  {}
func (System) instruction() {}

// Opcode implements Instruction.
func (LUI) Opcode() Opcode { return OpcodeLUI }

// Opcode implements Instruction.
func (AUIPC) Opcode() Opcode { return OpcodeAUIPC }

// Opcode implements Instruction.
func (JAL) Opcode() Opcode { return OpcodeJAL }

// Opcode implements Instruction.
func (JALR) Opcode() Opcode { return OpcodeJALR }

// Opcode implements Instruction.
func (Branch) Opcode() Opcode { return OpcodeBranch }

// Opcode implements Instruction.
func (OpImm) Opcode() Opcode { return OpcodeOpImm }

// Opcode implements Instruction.
func (Load) Opcode() Opcode { return OpcodeLoad }

// Opcode implements Instruction.
func (Store) Opcode() Opcode { return OpcodeStore }

// Opcode implements Instruction.
func (System) Opcode() Opcode { return OpcodeSystem }

// UpperImm returns the immediate shifted into place and sign-extended.
func (i LUI) UpperImm() int32 {
	return twos.SignExtend32(i.Imm<<12, 32)
}

// UpperImm returns the immediate shifted into place and sign-extended.
func (i AUIPC) UpperImm() int32 {
	return twos.SignExtend32(i.Imm<<12, 32)
}

// ByteOffset returns the signed jump distance in bytes.
func (i JAL) ByteOffset() int32 {
	return twos.SignExtend32(i.Offset, 20) * 2
}

// ByteOffset returns the signed branch distance in bytes.
func (i Branch) ByteOffset() int32 {
	return twos.SignExtend32(i.Offset, 12) * 2
}

// SignedOffset returns the sign-extended 12-bit offset.
func (i JALR) SignedOffset() int32 {
	return twos.SignExtend32(i.Offset, 12)
}

// SignedImm returns the sign-extended 12-bit immediate.
func (i OpImm) SignedImm() int32 {
	return twos.SignExtend32(i.Imm, 12)
}

// SignedImm returns the sign-extended 12-bit immediate.
func (i Load) SignedImm() int32 {
	return twos.SignExtend32(i.Imm, 12)
}

// SignedImm returns the sign-extended 12-bit immediate.
func (i Store) SignedImm() int32 {
	return twos.SignExtend32(i.Imm, 12)
}

func (i LUI) String() string {
	return fmt.Sprintf("lui x%d, 0x%x", i.Rd, i.Imm)
}

func (i AUIPC) String() string {
	return fmt.Sprintf("auipc x%d, 0x%x", i.Rd, i.Imm)
}

func (i JAL) String() string {
	return fmt.Sprintf("jal x%d, %d", i.Rd, i.ByteOffset())
}

func (i JALR) String() string {
	return fmt.Sprintf("jalr x%d, %d(x%d)", i.Rd, i.SignedOffset(), i.Rs1)
}

func (i Branch) String() string {
	var mnemonic string
	switch i.Funct3 {
	case Funct3BEQ:
		mnemonic = "beq"
	case Funct3BNE:
		mnemonic = "bne"
	default:
		mnemonic = fmt.Sprintf("branch.%03b", i.Funct3)
	}
	return fmt.Sprintf("%s x%d, x%d, %d", mnemonic, i.Rs1, i.Rs2, i.ByteOffset())
}

func (i OpImm) String() string {
	var mnemonic string
	switch i.Funct3 {
	case Funct3ADDI:
		mnemonic = "addi"
	case Funct3SLTI:
		mnemonic = "slti"
	case Funct3SLTIU:
		mnemonic = "sltiu"
	default:
		mnemonic = fmt.Sprintf("opimm.%03b", i.Funct3)
	}
	return fmt.Sprintf("%s x%d, x%d, %d", mnemonic, i.Rd, i.Rs1, i.SignedImm())
}

func (i Load) String() string {
	mnemonic := "lw"
	if i.Funct3 != Funct3LW {
		mnemonic = fmt.Sprintf("load.%03b", i.Funct3)
	}
	return fmt.Sprintf("%s x%d, %d(x%d)", mnemonic, i.Rd, i.SignedImm(), i.Rs1)
}

func (i Store) String() string {
	mnemonic := "sw"
	if i.Funct3 != Funct3SW {
		mnemonic = fmt.Sprintf("store.%03b", i.Funct3)
	}
	return fmt.Sprintf("%s x%d, %d(x%d)", mnemonic, i.Rs2, i.SignedImm(), i.Rs1)
}

func (i System) String() string {
	if i.Funct12 == Funct12ECALL {
		return "ecall"
	}
	return fmt.Sprintf("system 0x%03x", i.Funct12)
}
