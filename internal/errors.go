package internal

import (
	"errors"

	"github.com/mnafees/chip8/internal/translate"
)

var f = translate.From

var (
	// Load errors
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Diagnostic, the machine keeps running
	ErrUnknownOpcode = errors.New(f("unknown opcode"))

	// Faults
	ErrStackOverflow     = errors.New(f("stack overflow"))
	ErrStackUnderflow    = errors.New(f("stack underflow"))
	ErrAddressOutOfRange = errors.New(f("address out of range"))
	ErrPixelOutOfRange   = errors.New(f("pixel out of range"))
	ErrKeyOutOfRange     = errors.New(f("key out of range"))
)

// ProgramSizeError is returned by Load for an oversized program image.
type ProgramSizeError struct {
	Size int
}

func (err *ProgramSizeError) Error() string {
	return f("program is %d bytes, at most %d fit in memory", err.Size, MaxProgramSize)
}

func (err *ProgramSizeError) Unwrap() error {
	return ErrProgramTooLarge
}

// ExecError locates a Step failure.
type ExecError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (err *ExecError) Error() string {
	return f("opcode %04X at pc 0x%03X: %v", err.Opcode, err.PC, err.Err)
}

func (err *ExecError) Unwrap() error {
	return err.Err
}

// IsFatal reports whether err from Step means the machine cannot continue.
// An unknown opcode is only a diagnostic.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrUnknownOpcode)
}
