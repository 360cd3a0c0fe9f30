package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/loader"
	"github.com/sarchlab/rvsim/script"
	"github.com/sarchlab/rvsim/trace"
)

// Process exit codes.
const (
	exitOK         = 0
	exitTestFailed = 1
	exitSimError   = 2
)

// outcome is the result of running one program.
type outcome struct {
	path         string
	instructions uint64
	skipped      uint64
	err          error
}

// exitCode maps a run error to a process exit code. An unknown system call
// means the program under test reported a failure; anything else is a
// problem with the program image or the simulator.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, emu.ErrUnknownSyscall):
		return exitTestFailed
	default:
		return exitSimError
	}
}

// runner runs programs with a shared configuration.
type runner struct {
	cfg    *config.Config
	logger *slog.Logger

	// traceOut receives per-cycle diagnostics when cfg.Trace is set.
	traceOut io.Writer

	// output receives print() output of the syscall script.
	output io.Writer

	// pause, if set, is called after every cycle.
	pause func()
}

func (r *runner) hook() emu.TraceHook {
	var printer *trace.Printer
	if r.cfg.Trace && r.traceOut != nil {
		printer = trace.NewPrinter(r.traceOut, true)
	}
	if printer == nil && r.pause == nil {
		return nil
	}

	return func(ev emu.TraceEvent) {
		if printer != nil {
			printer.Print(ev)
		}
		if r.pause != nil {
			r.pause()
		}
	}
}

// run loads and executes the program at path.
func (r *runner) run(path string) outcome {
	out := outcome{path: path}

	prog, err := loader.Load(path)
	if err != nil {
		out.err = err
		return out
	}

	memory, err := prog.NewMemory()
	if err != nil {
		out.err = fmt.Errorf("failed to build memory for %s: %w", path, err)
		return out
	}

	r.logger.Debug("program loaded",
		"path", path,
		"entry", fmt.Sprintf("0x%08x", prog.EntryPoint),
		"segments", len(prog.Segments),
		"size", memory.Size())

	opts := r.cfg.EmulatorOptions(r.logger)
	if r.cfg.SyscallScript != "" {
		handler, err := script.Load(r.cfg.SyscallScript, r.output)
		if err != nil {
			out.err = err
			return out
		}
		opts = append(opts, emu.WithSyscallHandler(handler))
	}
	if hook := r.hook(); hook != nil {
		opts = append(opts, emu.WithTraceHook(hook))
	}

	e := emu.NewEmulator(opts...)
	e.LoadProgram(prog.EntryPoint, memory)

	out.err = e.Run()
	out.instructions = e.InstructionCount()
	out.skipped = e.SkippedCount()

	return out
}

// runAll runs every program in order, reporting progress to progress, and
// returns the outcomes plus the worst exit code.
func (r *runner) runAll(paths []string, progress io.Writer) ([]outcome, int) {
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("running"),
		progressbar.OptionShowCount(),
	)

	outcomes := make([]outcome, 0, len(paths))
	code := exitOK
	for _, path := range paths {
		out := r.run(path)
		outcomes = append(outcomes, out)

		if out.err != nil {
			r.logger.Info("program failed", "path", path, "error", out.err)
		} else {
			r.logger.Info("program passed", "path", path, "instructions", out.instructions)
		}

		code = max(code, exitCode(out.err))
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return outcomes, code
}
