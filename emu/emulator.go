// Package emu provides functional RV32 emulation.
package emu

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/rvsim/insts"
	"github.com/sarchlab/rvsim/twos"
)

// StepResult represents the result of executing a single cycle.
type StepResult struct {
	// Exited is true if the program terminated (via the terminate syscall).
	Exited bool

	// Skipped is true if the fetched word was zero and no instruction ran.
	Skipped bool

	// Inst is the decoded instruction, nil if skipped or undecodable.
	Inst insts.Instruction

	// Err is set if an error occurred during execution.
	Err error
}

// TraceEvent describes one completed cycle.
type TraceEvent struct {
	// PC is the address the word was fetched from.
	PC uint32

	// Word is the raw fetched word.
	Word uint32

	// Inst is the decoded instruction, nil if the cycle was skipped.
	Inst insts.Instruction

	// Skipped is true for empty (zero) words.
	Skipped bool

	// RegFile is the register file after the cycle. It must not be retained.
	RegFile *RegFile
}

// TraceHook is called after every successful cycle.
type TraceHook func(TraceEvent)

// Emulator executes RV32 instructions functionally.
type Emulator struct {
	regFile        *RegFile
	memory         Bus
	decoder        *insts.Decoder
	syscallHandler SyscallHandler

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	linkMode  LinkMode
	traceHook TraceHook
	logger    *slog.Logger

	// Execution state
	instructionCount uint64
	skippedCount     uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithMaxInstructions sets the maximum number of cycles to run.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithLinkMode selects how JAL computes its link value.
func WithLinkMode(mode LinkMode) EmulatorOption {
	return func(e *Emulator) {
		e.linkMode = mode
	}
}

// WithTraceHook installs a callback invoked after every cycle.
func WithTraceHook(hook TraceHook) EmulatorOption {
	return func(e *Emulator) {
		e.traceHook = hook
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// NewEmulator creates a new RV32 emulator. Until LoadProgram is called it
// has an empty memory, so every fetch fails.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		memory:  NewMemory(0, 0),
		decoder: insts.NewDecoder(),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(e.logger)
	}

	e.buildUnits()

	return e
}

func (e *Emulator) buildUnits() {
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile, e.linkMode)
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() Bus {
	return e.memory
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// SkippedCount returns the number of empty words skipped.
func (e *Emulator) SkippedCount() uint64 {
	return e.skippedCount
}

// LoadProgram attaches memory and sets the entry point.
func (e *Emulator) LoadProgram(entry uint32, memory Bus) {
	e.memory = memory
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.regFile.PC = entry
}

// Reset clears registers, counters and memory.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{}
	e.memory = NewMemory(0, 0)
	e.instructionCount = 0
	e.skippedCount = 0
	e.buildUnits()
}

// Step runs one fetch-decode-execute cycle.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount+e.skippedCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC

	// 1. Fetch
	word, err := e.memory.ReadWord(pc)
	if err != nil {
		return StepResult{Err: fmt.Errorf("fetch at pc=0x%08x: %w", pc, err)}
	}

	// An all-zero word marks a hole in the program image.
	if word == 0 {
		e.logger.Debug("no instruction, skipping", "pc", fmt.Sprintf("0x%08x", pc))
		e.regFile.PC = twos.Wrap32(int64(pc) + WordSize)
		e.skippedCount++
		e.trace(TraceEvent{PC: pc, Word: word, Skipped: true})
		return StepResult{Skipped: true}
	}

	// 2. Decode
	inst, err := e.decoder.Decode(word)
	if err != nil {
		return StepResult{Err: fmt.Errorf("decode at pc=0x%08x: %w", pc, err)}
	}

	// 3. Execute
	result := e.execute(inst)
	e.regFile.ClearZero()
	result.Inst = inst
	if result.Err != nil {
		result.Err = fmt.Errorf("execute %v at pc=0x%08x: %w", inst, pc, result.Err)
		return result
	}

	e.instructionCount++
	e.trace(TraceEvent{PC: pc, Word: word, Inst: inst})

	return result
}

func (e *Emulator) trace(ev TraceEvent) {
	if e.traceHook == nil {
		return
	}
	ev.RegFile = e.regFile
	e.traceHook(ev)
}

// Run executes cycles until the program terminates or an error occurs.
// It returns nil on termination.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			e.logger.Debug("run aborted", "error", result.Err)
			return result.Err
		}
		if result.Exited {
			e.logger.Debug("run terminated",
				"instructions", e.instructionCount,
				"skipped", e.skippedCount)
			return nil
		}
	}
}

// advance moves the PC to the next instruction.
func (e *Emulator) advance() {
	e.regFile.PC = twos.Wrap32(int64(e.regFile.PC) + WordSize)
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(inst insts.Instruction) StepResult {
	switch i := inst.(type) {
	case insts.LUI:
		e.alu.LUI(i.Rd, i.Imm)
	case insts.AUIPC:
		e.alu.AUIPC(i.Rd, i.Imm)
	case insts.JAL:
		e.branchUnit.JAL(i.Rd, i.Offset)
		return StepResult{} // PC already updated by jump
	case insts.JALR:
		if i.Funct3 != insts.Funct3JALR {
			return StepResult{Err: &ExecuteError{Opcode: i.Opcode(), Funct: uint16(i.Funct3)}}
		}
		e.branchUnit.JALR(i.Rd, i.Rs1, i.Offset)
		return StepResult{} // PC already updated by jump
	case insts.Branch:
		return e.executeBranch(i)
	case insts.OpImm:
		if err := e.executeOpImm(i); err != nil {
			return StepResult{Err: err}
		}
	case insts.Load:
		if err := e.executeLoad(i); err != nil {
			return StepResult{Err: err}
		}
	case insts.Store:
		if err := e.executeStore(i); err != nil {
			return StepResult{Err: err}
		}
	case insts.System:
		return e.executeSystem(i)
	default:
		return StepResult{Err: fmt.Errorf("no executor for %v", inst.Opcode())}
	}

	// Advance PC by 4 (for non-branch instructions)
	e.advance()

	return StepResult{}
}

// executeBranch executes conditional branch instructions.
func (e *Emulator) executeBranch(inst insts.Branch) StepResult {
	switch inst.Funct3 {
	case insts.Funct3BEQ:
		e.branchUnit.BEQ(inst.Rs1, inst.Rs2, inst.Offset)
	case insts.Funct3BNE:
		e.branchUnit.BNE(inst.Rs1, inst.Rs2, inst.Offset)
	default:
		return StepResult{Err: &ExecuteError{Opcode: inst.Opcode(), Funct: uint16(inst.Funct3)}}
	}
	return StepResult{}
}

// executeOpImm executes register-immediate ALU instructions.
func (e *Emulator) executeOpImm(inst insts.OpImm) error {
	switch inst.Funct3 {
	case insts.Funct3ADDI:
		e.alu.ADDI(inst.Rd, inst.Rs1, inst.Imm)
	case insts.Funct3SLTI:
		e.alu.SLTI(inst.Rd, inst.Rs1, inst.Imm)
	case insts.Funct3SLTIU:
		e.alu.SLTIU(inst.Rd, inst.Rs1, inst.Imm)
	default:
		return &ExecuteError{Opcode: inst.Opcode(), Funct: uint16(inst.Funct3)}
	}
	return nil
}

// executeLoad executes load instructions.
func (e *Emulator) executeLoad(inst insts.Load) error {
	if inst.Funct3 != insts.Funct3LW {
		return &ExecuteError{Opcode: inst.Opcode(), Funct: uint16(inst.Funct3)}
	}
	return e.lsu.LW(inst.Rd, inst.Rs1, inst.Imm)
}

// executeStore executes store instructions.
func (e *Emulator) executeStore(inst insts.Store) error {
	if inst.Funct3 != insts.Funct3SW {
		return &ExecuteError{Opcode: inst.Opcode(), Funct: uint16(inst.Funct3)}
	}
	return e.lsu.SW(inst.Rs1, inst.Rs2, inst.Imm)
}

// executeSystem handles the ECALL instruction.
func (e *Emulator) executeSystem(inst insts.System) StepResult {
	if inst.Funct12 != insts.Funct12ECALL {
		return StepResult{Err: &ExecuteError{Opcode: inst.Opcode(), Funct: inst.Funct12}}
	}

	syscallResult, err := e.syscallHandler.Handle(e.regFile.SyscallParams())
	if err != nil {
		return StepResult{Err: err}
	}

	e.advance()

	return StepResult{Exited: syscallResult.Exited}
}
