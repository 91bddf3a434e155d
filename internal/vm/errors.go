package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Errors reported by the virtual machine. Faults returned by Step wrap one of
// these and can be matched with errors.Is.
var (
	ErrUnknownOpcode    = errors.New("unknown opcode")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrOutOfBoundsFetch = errors.New("program counter out of bounds")
	ErrMemoryBounds     = errors.New("memory access out of bounds")
	ErrCapacity         = errors.New("program exceeds memory capacity")
	ErrInvalidKey       = errors.New("invalid key")
	ErrHalted           = errors.New("virtual machine halted")
)

// Fault is a runtime error raised while executing the instruction at PC.
type Fault struct {
	Err    error  // one of the Err* sentinel errors
	PC     uint16 // address the instruction was fetched from
	Opcode uint16 // instruction word, zero if the fetch failed
}

func (f *Fault) Error() string {
	if errors.Is(f.Err, ErrOutOfBoundsFetch) {
		return fmt.Sprintf("%04x: %s", f.PC, f.Err)
	}
	return fmt.Sprintf("%04x: %04x (%s): %s", f.PC, f.Opcode, chip8.Format(f.Opcode), f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Fatal returns whether the fault halts the virtual machine.
// Unknown opcodes are left to the driver to handle.
func (f *Fault) Fatal() bool {
	return !errors.Is(f.Err, ErrUnknownOpcode)
}

// CapacityError is returned when a program image does not fit into memory.
type CapacityError struct {
	Size     int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("program of %d bytes exceeds capacity of %d bytes", e.Size, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}
