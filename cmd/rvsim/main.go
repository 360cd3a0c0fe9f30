// Package main provides the entry point for rvsim.
// rvsim is a functional RV32 instruction-set simulator.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sarchlab/rvsim/config"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML or JSON configuration file")
	verbose     = flag.Bool("v", false, "Print the instruction and registers after every cycle")
	step        = flag.Bool("step", false, "Wait for Enter after every cycle (terminal only)")
	maxInsts    = flag.Uint64("max", 0, "Maximum cycles per program, 0 for no limit")
	standardJAL = flag.Bool("standard-jal", false, "Link JAL to the address after the jump")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	syscalls    = flag.String("syscalls", "", "Starlark file implementing system calls")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rvsim [options] <program>...\n")
		fmt.Fprintf(os.Stderr, "\nPrograms are hex images (\"<address>: <word>\" per line) or RV32 ELF files.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(exitSimError)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(exitSimError)
	}

	logger := cfg.Logger(os.Stderr)
	r := &runner{cfg: cfg, logger: logger, traceOut: os.Stdout, output: os.Stdout}

	if *step {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			in := bufio.NewReader(os.Stdin)
			r.pause = func() { _, _ = in.ReadString('\n') }
		} else {
			logger.Warn("stdin is not a terminal, ignoring -step")
		}
	}

	if flag.NArg() == 1 {
		os.Exit(runSingle(r, flag.Arg(0)))
	}

	outcomes, code := r.runAll(flag.Args(), os.Stderr)
	writeSummary(os.Stdout, newPrinter(logger), outcomes)
	os.Exit(code)
}

// loadConfig reads the config file, if any, and applies the flags the user
// set explicitly on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Trace = *verbose
		case "max":
			cfg.MaxInstructions = *maxInsts
		case "standard-jal":
			cfg.StandardJAL = *standardJAL
		case "debug":
			cfg.Debug = *debug
		case "syscalls":
			cfg.SyscallScript = *syscalls
		}
	})

	return cfg, cfg.Validate()
}

// runSingle runs one program and returns the process exit code.
func runSingle(r *runner, path string) int {
	out := r.run(path)
	if out.err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", out.err)
	}

	r.logger.Info("run finished",
		"path", path,
		"instructions", out.instructions,
		"skipped", out.skipped,
		"exit_code", exitCode(out.err))

	return exitCode(out.err)
}
