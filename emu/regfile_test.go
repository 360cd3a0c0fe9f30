package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should read back written values", func() {
		regFile.WriteReg(5, -42)
		Expect(regFile.ReadReg(5)).To(Equal(int32(-42)))
		Expect(regFile.ReadRegU(5)).To(Equal(uint32(0xFFFFFFD6)))
	})

	It("should discard writes to x0", func() {
		regFile.WriteReg(0, 99)
		Expect(regFile.ReadReg(0)).To(BeZero())
		Expect(regFile.X[0]).To(BeZero())
	})

	It("should read x0 as zero even if the array was modified", func() {
		regFile.X[0] = 7
		Expect(regFile.ReadReg(0)).To(BeZero())

		regFile.ClearZero()
		Expect(regFile.X[0]).To(BeZero())
	})

	It("should collect a0-a5 as syscall parameters", func() {
		for i := uint8(0); i < 6; i++ {
			regFile.WriteReg(emu.RegA0+i, int32(i)+1)
		}
		regFile.WriteReg(emu.RegA5+1, 100)

		Expect(regFile.SyscallParams()).To(Equal([6]uint32{1, 2, 3, 4, 5, 6}))
	})

	It("should name registers by ABI", func() {
		Expect(emu.RegName(0)).To(Equal("zero"))
		Expect(emu.RegName(emu.RegA0)).To(Equal("a0"))
		Expect(emu.RegName(31)).To(Equal("t6"))
		Expect(emu.RegName(40)).To(Equal("x40"))
	})
})
