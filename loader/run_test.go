package loader_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/loader"
)

func runImage(image string) (*emu.Emulator, error) {
	prog, err := loader.ParseImage(strings.NewReader(image))
	Expect(err).NotTo(HaveOccurred())

	mem, err := prog.NewMemory()
	Expect(err).NotTo(HaveOccurred())

	e := emu.NewEmulator(emu.WithMaxInstructions(1000))
	e.LoadProgram(prog.EntryPoint, mem)

	return e, e.Run()
}

var _ = Describe("Loaded programs", func() {
	It("should count down a loop and terminate", func() {
		// addi x5, x0, 3
		// loop: addi x5, x5, -1
		//       bne x5, x0, loop
		// addi a0, x0, 1
		// ecall
		e, err := runImage(`
80000000: 00300293
80000004: fff28293
80000008: fe029ee3
8000000c: 00100513
80000010: 00000073
`)

		Expect(err).NotTo(HaveOccurred())
		Expect(e.RegFile().ReadReg(5)).To(BeZero())
		Expect(e.InstructionCount()).To(Equal(uint64(9)))
	})

	It("should skip holes between words", func() {
		e, err := runImage(`
1000: 00100513
100c: 00000073
`)

		Expect(err).NotTo(HaveOccurred())
		Expect(e.SkippedCount()).To(Equal(uint64(2)))
		Expect(e.InstructionCount()).To(Equal(uint64(2)))
	})

	It("should stop on an unknown system call", func() {
		_, err := runImage(`
1000: 00700513
1004: 00000073
`)

		var sysErr *emu.UnknownSyscallError
		Expect(errors.As(err, &sysErr)).To(BeTrue())
		Expect(sysErr.Code).To(Equal(uint32(7)))
	})

	It("should fail when execution runs past the image", func() {
		_, err := runImage("1000: 00000013\n")

		Expect(err).To(MatchError(emu.ErrOutOfBounds))
	})
})
