package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrROMTooLarge          = errors.New("rom exceeds available memory")
	ErrUnsupportedOperation = errors.New("program depends on a machine code subroutine")
	ErrUnknownOpcode        = errors.New("unknown opcode")
	ErrStackUnderflow       = errors.New("stack underflow")
	ErrStackOverflow        = errors.New("stack overflow")
	ErrProgramExhausted     = errors.New("program ran out of instructions")
)

// LoadError is returned when a ROM can not be loaded. The interpreter is still
// usable afterwards.
type LoadError struct {
	Path string // empty when loaded from a reader
	Size int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading rom: %v", e.Err)
	}

	return fmt.Sprintf("loading rom '%s': %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Fault is a fatal condition raised while stepping. PC is the address of the
// instruction that faulted.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	if errors.Is(f.Err, ErrProgramExhausted) {
		return fmt.Sprintf("%v at %#04x", f.Err, f.PC)
	}

	return fmt.Sprintf("opcode %04X at %#04x: %v", f.Opcode, f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
