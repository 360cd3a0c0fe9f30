package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/insts"
)

var _ = Describe("Runner", func() {
	var (
		tempDir string
		r       *runner
	)

	// passing: addi a0, x0, 1; ecall
	// failing: addi a0, x0, 5; ecall
	const (
		passing = "1000: 00100513\n1004: 00000073\n"
		failing = "1000: 00500513\n1004: 00000073\n"
		broken  = "1000: 0000007f\n"
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rvsim-test")
		Expect(err).NotTo(HaveOccurred())

		r = &runner{
			cfg:    config.Default(),
			logger: slog.New(slog.DiscardHandler),
		}
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	writeImage := func(name, content string) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	Describe("exitCode", func() {
		It("should map errors to exit codes", func() {
			Expect(exitCode(nil)).To(Equal(exitOK))
			Expect(exitCode(&emu.UnknownSyscallError{Code: 5})).To(Equal(exitTestFailed))
			Expect(exitCode(&insts.DecodeError{Word: 0x7f, Opcode: 0x7f})).To(Equal(exitSimError))
			Expect(exitCode(emu.ErrMaxInstructions)).To(Equal(exitSimError))
		})
	})

	Describe("run", func() {
		It("should run a program to termination", func() {
			out := r.run(writeImage("pass.mc", passing))

			Expect(out.err).NotTo(HaveOccurred())
			Expect(out.instructions).To(Equal(uint64(2)))
		})

		It("should report an unknown system call", func() {
			out := r.run(writeImage("fail.mc", failing))

			Expect(out.err).To(MatchError(emu.ErrUnknownSyscall))
			Expect(exitCode(out.err)).To(Equal(exitTestFailed))
		})

		It("should report an undecodable word", func() {
			out := r.run(writeImage("broken.mc", broken))

			Expect(out.err).To(MatchError(insts.ErrUnimplementedOpcode))
		})

		It("should report an empty image", func() {
			out := r.run(writeImage("empty.mc", "# nothing\n"))

			Expect(out.err).To(HaveOccurred())
			Expect(exitCode(out.err)).To(Equal(exitSimError))
		})

		It("should trace every cycle when enabled", func() {
			var buf bytes.Buffer
			r.cfg.Trace = true
			r.traceOut = &buf

			out := r.run(writeImage("pass.mc", passing))

			Expect(out.err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("addi x10, x0, 1"))
			Expect(buf.String()).To(ContainSubstring("ecall"))
			Expect(buf.String()).To(ContainSubstring("a0=00000001"))
		})

		It("should use the configured syscall script", func() {
			var buf bytes.Buffer
			r.output = &buf
			r.cfg.SyscallScript = writeImage("exit5.star",
				"def syscall(code, args):\n    print(\"code\", code)\n    return \"exit\"\n")

			out := r.run(writeImage("fail.mc", failing))

			Expect(out.err).NotTo(HaveOccurred())
			Expect(buf.String()).To(Equal("code 5\n"))
		})

		It("should report a broken syscall script", func() {
			r.cfg.SyscallScript = writeImage("broken.star", "x = 1\n")

			out := r.run(writeImage("pass.mc", passing))

			Expect(out.err).To(HaveOccurred())
			Expect(exitCode(out.err)).To(Equal(exitSimError))
		})

		It("should pause after every cycle when stepping", func() {
			pauses := 0
			r.pause = func() { pauses++ }

			out := r.run(writeImage("pass.mc", passing))

			Expect(out.err).NotTo(HaveOccurred())
			Expect(pauses).To(Equal(2))
		})
	})

	Describe("runAll", func() {
		It("should return the worst exit code", func() {
			paths := []string{
				writeImage("a.mc", passing),
				writeImage("b.mc", failing),
				writeImage("c.mc", passing),
			}

			outcomes, code := r.runAll(paths, io.Discard)

			Expect(outcomes).To(HaveLen(3))
			Expect(code).To(Equal(exitTestFailed))
		})

		It("should prefer simulator errors over failed programs", func() {
			paths := []string{
				writeImage("a.mc", failing),
				writeImage("b.mc", broken),
			}

			_, code := r.runAll(paths, io.Discard)

			Expect(code).To(Equal(exitSimError))
		})
	})

	Describe("writeSummary", func() {
		It("should print totals and failures", func() {
			var buf bytes.Buffer
			outcomes := []outcome{
				{path: "a.mc", instructions: 2},
				{path: "b.mc", instructions: 2, err: &emu.UnknownSyscallError{Code: 5}},
			}

			writeSummary(&buf, message.NewPrinter(language.English), outcomes)

			Expect(buf.String()).To(Equal(
				"1 of 2 programs passed, 4 instructions executed\n" +
					"FAIL b.mc: unknown system call: 5\n"))
		})
	})
})
