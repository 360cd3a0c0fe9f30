package insts

import "fmt"

// Opcode is the low 7 bits of an instruction word.
type Opcode uint8

// RV32 major opcodes.
const (
	OpcodeLoad   Opcode = 0b0000011
	OpcodeOpImm  Opcode = 0b0010011
	OpcodeAUIPC  Opcode = 0b0010111
	OpcodeStore  Opcode = 0b0100011
	OpcodeLUI    Opcode = 0b0110111
	OpcodeBranch Opcode = 0b1100011
	OpcodeJALR   Opcode = 0b1100111
	OpcodeJAL    Opcode = 0b1101111
	OpcodeSystem Opcode = 0b1110011
)

// Secondary selector values.
const (
	Funct3BEQ uint8 = 0b000 // Branch if equal
	Funct3BNE uint8 = 0b001 // Branch if not equal

	Funct3ADDI  uint8 = 0b000 // Add immediate
	Funct3SLTI  uint8 = 0b010 // Set less than immediate (signed)
	Funct3SLTIU uint8 = 0b011 // Set less than immediate (unsigned)

	Funct3LW uint8 = 0b010 // Load word
	Funct3SW uint8 = 0b010 // Store word

	Funct3JALR uint8 = 0b000

	Funct12ECALL uint16 = 0x000
)

var opcodeNames = map[Opcode]string{
	OpcodeLoad:   "LOAD",
	OpcodeOpImm:  "OP-IMM",
	OpcodeAUIPC:  "AUIPC",
	OpcodeStore:  "STORE",
	OpcodeLUI:    "LUI",
	OpcodeBranch: "BRANCH",
	OpcodeJALR:   "JALR",
	OpcodeJAL:    "JAL",
	OpcodeSystem: "SYSTEM",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("opcode(0b%07b)", uint8(o))
}
