// Package main provides the entry point for rvsim.
// rvsim is a functional RV32 instruction-set simulator.
//
// For the full CLI, use: go run ./cmd/rvsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rvsim - RV32 instruction-set simulator")
	fmt.Println("")
	fmt.Println("Usage: rvsim [options] <program>...")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config        Path to a YAML or JSON configuration file")
	fmt.Println("  -v             Print the instruction and registers after every cycle")
	fmt.Println("  -step          Wait for Enter after every cycle (terminal only)")
	fmt.Println("  -max           Maximum cycles per program")
	fmt.Println("  -standard-jal  Link JAL to the address after the jump")
	fmt.Println("  -debug         Enable debug logging")
	fmt.Println("  -syscalls      Starlark file implementing system calls")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rvsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rvsim' instead.")
	}
}
