// Package twos provides fixed-width two's-complement helpers.
//
// All register and PC arithmetic in the simulator is performed on wide Go
// integers and then narrowed with Truncate, which models a fixed-width
// datapath that silently discards overflow. Immediates are widened with
// ToSigned.
package twos

// Width is the architecture width in bits.
const Width = 32

// MaskPrefix returns a mask of the low n bits. n >= 64 yields all ones.
func MaskPrefix(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// ToSigned reinterprets the low bits of value as a bits-wide two's-complement
// integer. Bits above the field are ignored.
func ToSigned(value uint64, bits uint) int64 {
	if bits == 0 {
		return 0
	}
	if bits >= 64 {
		return int64(value)
	}

	value &= MaskPrefix(bits)
	if value&(uint64(1)<<(bits-1)) != 0 {
		return int64(value) - int64(uint64(1)<<bits)
	}
	return int64(value)
}

// Truncate keeps only the low bits of value, discarding overflow.
func Truncate(value int64, bits uint) uint64 {
	return uint64(value) & MaskPrefix(bits)
}

// SignExtend32 sign-extends a bits-wide field held in value to 32 bits.
func SignExtend32(value uint32, bits uint) int32 {
	return int32(ToSigned(uint64(value), bits))
}

// Wrap32 truncates value to the architecture width.
func Wrap32(value int64) uint32 {
	return uint32(Truncate(value, Width))
}
