package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/rvsim/insts"
)

var (
	// ErrUnimplementedFunct is returned when a decoded instruction selects a
	// funct3/funct12 variant the executor does not implement.
	ErrUnimplementedFunct = errors.New("unimplemented funct")

	// ErrUnknownSyscall is returned by the system-call hook for a call code
	// it does not recognise. It marks a failing program, not a simulator
	// limitation.
	ErrUnknownSyscall = errors.New("unknown system call")

	// ErrOutOfBounds is returned for memory accesses outside the backing
	// buffer.
	ErrOutOfBounds = errors.New("memory access out of bounds")

	// ErrMaxInstructions is returned when the instruction limit is reached.
	ErrMaxInstructions = errors.New("max instructions reached")
)

// ExecuteError reports an instruction whose funct field has no
// implementation.
type ExecuteError struct {
	Opcode insts.Opcode
	Funct  uint16
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("%v for %v: 0b%b", ErrUnimplementedFunct, e.Opcode, e.Funct)
}

func (e *ExecuteError) Unwrap() error {
	return ErrUnimplementedFunct
}

// UnknownSyscallError reports the call code of an unrecognised system call.
type UnknownSyscallError struct {
	Code uint32
}

func (e *UnknownSyscallError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnknownSyscall, e.Code)
}

func (e *UnknownSyscallError) Unwrap() error {
	return ErrUnknownSyscall
}

// MemoryBoundsError reports the address of an out-of-range access.
type MemoryBoundsError struct {
	Address uint32
	Start   uint32
	Size    uint32
}

func (e *MemoryBoundsError) Error() string {
	return fmt.Sprintf("%v: address 0x%08x not in [0x%08x, 0x%08x)",
		ErrOutOfBounds, e.Address, e.Start, uint64(e.Start)+uint64(e.Size))
}

func (e *MemoryBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
