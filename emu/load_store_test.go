package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
)

var _ = Describe("LoadStoreUnit", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		lsu     *emu.LoadStoreUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemory(0x2000, 64)
		lsu = emu.NewLoadStoreUnit(regFile, memory)
	})

	It("should compute rs1 + sext(imm)", func() {
		regFile.WriteRegU(1, 0x2010)
		Expect(lsu.EffectiveAddress(1, 0x004)).To(Equal(uint32(0x2014)))
		Expect(lsu.EffectiveAddress(1, 0xFFC)).To(Equal(uint32(0x200C)))
	})

	It("should load a word", func() {
		Expect(memory.WriteWord(0xCAFEBABE, 0x2008)).To(Succeed())
		regFile.WriteRegU(1, 0x2000)

		Expect(lsu.LW(5, 1, 8)).To(Succeed())
		Expect(regFile.ReadRegU(5)).To(Equal(uint32(0xCAFEBABE)))
	})

	It("should store a word", func() {
		regFile.WriteRegU(1, 0x2020)
		regFile.WriteRegU(2, 0x01234567)

		Expect(lsu.SW(1, 2, 0xFFC)).To(Succeed())

		word, err := memory.ReadWord(0x201C)
		Expect(err).NotTo(HaveOccurred())
		Expect(word).To(Equal(uint32(0x01234567)))
	})

	It("should fail out of bounds without touching rd", func() {
		regFile.WriteReg(5, 77)
		Expect(lsu.LW(5, 0, 0)).To(MatchError(emu.ErrOutOfBounds))
		Expect(regFile.ReadReg(5)).To(Equal(int32(77)))
	})
})
