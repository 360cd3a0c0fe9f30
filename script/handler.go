// Package script implements system calls with a Starlark function.
//
// A script defines
//
//	def syscall(code, args):
//	    ...
//
// where code is a0 and args holds a1-a5. The function returns "exit",
// "continue" (or None) or "unknown". Output of print() goes to the writer
// given when the script is loaded.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/sarchlab/rvsim/emu"
)

// Values a syscall function may return.
const (
	ActionContinue = "continue"
	ActionExit     = "exit"
	ActionUnknown  = "unknown"
)

// FuncName is the name of the function a script must define.
const FuncName = "syscall"

// ErrNoSyscallFunc is returned for a script that does not define FuncName.
var ErrNoSyscallFunc = errors.New("script does not define syscall(code, args)")

// Handler is an emu.SyscallHandler backed by a Starlark function.
type Handler struct {
	thread *starlark.Thread
	fn     starlark.Callable
}

// Load reads and compiles the script at path.
func Load(path string, out io.Writer) (*Handler, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read syscall script: %w", err)
	}
	return Compile(path, src, out)
}

// Compile executes src and looks up its syscall function. A nil out
// discards print() output.
func Compile(filename string, src []byte, out io.Writer) (*Handler, error) {
	if out == nil {
		out = io.Discard
	}

	thread := &starlark.Thread{
		Name: "syscall",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}

	predeclared := starlark.StringDict{
		"TERMINATE": starlark.MakeUint64(uint64(emu.SyscallTerminate)),
	}

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("failed to load syscall script: %w", err)
	}

	fn, ok := globals[FuncName].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoSyscallFunc)
	}

	return &Handler{thread: thread, fn: fn}, nil
}

// Handle calls the script with a0 and a list of a1-a5.
func (h *Handler) Handle(params [6]uint32) (emu.SyscallResult, error) {
	args := make([]starlark.Value, 0, len(params)-1)
	for _, p := range params[1:] {
		args = append(args, starlark.MakeUint64(uint64(p)))
	}

	code := params[0]
	rv, err := starlark.Call(h.thread, h.fn,
		starlark.Tuple{starlark.MakeUint64(uint64(code)), starlark.NewList(args)}, nil)
	if err != nil {
		return emu.SyscallResult{}, fmt.Errorf("system call %d: %w", code, err)
	}

	if rv == starlark.None {
		return emu.SyscallResult{}, nil
	}

	action, ok := rv.(starlark.String)
	if !ok {
		return emu.SyscallResult{}, fmt.Errorf("system call %d: %s returned %s, want string",
			code, FuncName, rv.Type())
	}

	switch string(action) {
	case ActionContinue:
		return emu.SyscallResult{}, nil
	case ActionExit:
		return emu.SyscallResult{Exited: true}, nil
	case ActionUnknown:
		return emu.SyscallResult{}, &emu.UnknownSyscallError{Code: code}
	default:
		return emu.SyscallResult{}, fmt.Errorf("system call %d: unexpected action %q", code, string(action))
	}
}
