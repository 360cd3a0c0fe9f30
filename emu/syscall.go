// Package emu provides functional RV32 emulation.
package emu

import "log/slog"

// System call codes, passed in a0.
const (
	SyscallTerminate uint32 = 1 // end the run
)

// SyscallResult represents the result of a syscall execution.
type SyscallResult struct {
	// Exited is true if the syscall caused program termination.
	Exited bool
}

// SyscallHandler is the interface for handling ECALL instructions.
type SyscallHandler interface {
	// Handle executes the call selected by params[0]. params holds a0-a5.
	// An error aborts the run.
	Handle(params [6]uint32) (SyscallResult, error)
}

// DefaultSyscallHandler implements the terminate call and rejects
// everything else.
type DefaultSyscallHandler struct {
	logger *slog.Logger
}

// NewDefaultSyscallHandler creates a default syscall handler. A nil logger
// discards output.
func NewDefaultSyscallHandler(logger *slog.Logger) *DefaultSyscallHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DefaultSyscallHandler{logger: logger}
}

// Handle executes the system call selected by a0.
func (h *DefaultSyscallHandler) Handle(params [6]uint32) (SyscallResult, error) {
	switch params[0] {
	case SyscallTerminate:
		h.logger.Debug("terminate system call")
		return SyscallResult{Exited: true}, nil
	default:
		h.logger.Debug("unknown system call", "code", params[0])
		return SyscallResult{}, &UnknownSyscallError{Code: params[0]}
	}
}

// SyscallFunc adapts a function to the SyscallHandler interface.
type SyscallFunc func(params [6]uint32) (SyscallResult, error)

// Handle calls f(params).
func (f SyscallFunc) Handle(params [6]uint32) (SyscallResult, error) {
	return f(params)
}
