// Package insts provides RV32 instruction definitions and decoding.
//
// This package implements decoding of RISC-V machine words into typed
// instruction records. Each opcode class has its own Go type carrying only
// the fields of its encoding format:
//   - U-type: LUI, AUIPC
//   - J-type: JAL
//   - I-type: JALR, OpImm (ADDI, SLTI, SLTIU), Load (LW)
//   - S-type: Store (SW)
//   - B-type: Branch (BEQ, BNE)
//   - SYSTEM: ECALL
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0xFFF28293) // addi x5, x5, -1
//	if err != nil {
//		return err
//	}
//	fmt.Println(inst)
package insts
