package insts

import (
	"errors"
	"fmt"
)

// ErrUnimplementedOpcode is returned for words whose opcode has no decoder.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// DecodeError reports a word that could not be decoded.
type DecodeError struct {
	Word   uint32
	Opcode Opcode
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode word 0x%08x: %v 0b%07b", e.Word, ErrUnimplementedOpcode, uint8(e.Opcode))
}

func (e *DecodeError) Unwrap() error {
	return ErrUnimplementedOpcode
}
