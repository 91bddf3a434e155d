// Package vm implements a CHIP-8 virtual machine.
//
// The machine owns its memory, registers, call stack, display and keypad.
// A driver loads a program image, calls Step once per instruction, reads the
// display with Display and reports keypad input with SetKey. All methods must
// be called from a single goroutine.
package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// RegisterCount is the number of general purpose registers V0-VF.
const RegisterCount = 16

// flagRegister is the index of VF, the carry, borrow and collision flag.
const flagRegister = 0xF

// Registers is a snapshot of the register file.
type Registers struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	SP         uint8 // call stack depth
	DelayTimer uint8
	SoundTimer uint8
}

// VM is a CHIP-8 virtual machine.
type VM struct {
	mem     *memory
	v       [RegisterCount]uint8
	i       uint16
	pc      uint16
	stack   stack
	display Frame
	keys    keypad

	delayTimer uint8
	soundTimer uint8
	clock      *timerClock

	random RandomSource
	logger *log.Logger
	trace  bool

	cycles uint64
	fault  *Fault // fatal fault that halted the machine
}

// New returns a virtual machine with the font loaded and the program
// counter at ProgramStart.
func New(opts ...Option) *VM {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &VM{
		mem:    newMemory(),
		pc:     ProgramStart,
		keys:   newKeypad(),
		clock:  newTimerClock(o.now, o.instructionRate, o.manualTimers),
		random: o.random,
		logger: o.logger,
		trace:  o.trace && o.logger != nil,
	}
}

// Load copies a program image into memory at ProgramStart.
// It returns a *CapacityError if the image is larger than ProgramCapacity.
func (v *VM) Load(program []byte) error {
	return v.mem.load(program)
}

// Memory returns the memory of the machine. Writes to the returned slice
// change the memory.
func (v *VM) Memory() []byte {
	return v.mem[:]
}

// Step executes a single instruction.
//
// An unknown opcode returns a *Fault wrapping ErrUnknownOpcode and leaves the
// machine unchanged; the driver can call Skip to continue after it. Any other
// fault halts the machine and is returned again, wrapped with ErrHalted, by
// all following calls.
func (v *VM) Step() error {
	if v.fault != nil {
		return fmt.Errorf("%w: %w", ErrHalted, v.fault)
	}

	pc := v.pc
	word, ok := v.mem.word(pc)
	if !ok {
		return v.halt(&Fault{Err: ErrOutOfBoundsFetch, PC: pc})
	}

	op, ok := lookup(word)
	if !ok {
		return &Fault{Err: ErrUnknownOpcode, PC: pc, Opcode: word}
	}

	if v.trace {
		v.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", chip8.Format(word)))
	}

	v.pc += 2
	if err := op.exec(v, decodeOperands(word)); err != nil {
		v.pc = pc
		return v.halt(&Fault{Err: err, PC: pc, Opcode: word})
	}

	v.cycles++
	if ticks := v.clock.advance(); ticks > 0 {
		v.tickTimers(ticks)
	}
	return nil
}

func (v *VM) halt(fault *Fault) error {
	v.fault = fault
	return fault
}

// Skip moves the program counter past the current instruction.
func (v *VM) Skip() {
	if v.fault == nil {
		v.pc += 2
	}
}

// Halted returns whether a fatal fault stopped the machine.
func (v *VM) Halted() bool {
	return v.fault != nil
}

// Fault returns the fatal fault that halted the machine, or nil.
func (v *VM) Fault() *Fault {
	return v.fault
}

// Cycles returns the number of executed instructions.
func (v *VM) Cycles() uint64 {
	return v.cycles
}

// TickTimers performs one 60 Hz tick of the delay and sound timers.
func (v *VM) TickTimers() {
	v.tickTimers(1)
}

func (v *VM) tickTimers(ticks int) {
	v.delayTimer = countDown(v.delayTimer, ticks)
	v.soundTimer = countDown(v.soundTimer, ticks)
}

// SoundActive returns whether the sound timer is running, which is when the
// buzzer of the machine sounds.
func (v *VM) SoundActive() bool {
	return v.soundTimer > 0
}

// Display returns a snapshot of the display.
func (v *VM) Display() Frame {
	return v.display
}

// SetKey sets the pressed state of a keypad key 0x0-0xF.
func (v *VM) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	v.keys.set(key, pressed)
	return nil
}

// Key returns whether a keypad key is pressed.
func (v *VM) Key(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return v.keys.pressed[key]
}

// WaitingForKey returns whether the machine is blocked on a key press.
func (v *VM) WaitingForKey() bool {
	return v.keys.waiting
}

// Registers returns a snapshot of the register file.
func (v *VM) Registers() Registers {
	return Registers{
		V:          v.v,
		I:          v.i,
		PC:         v.pc,
		SP:         v.stack.sp,
		DelayTimer: v.delayTimer,
		SoundTimer: v.soundTimer,
	}
}

// Stack returns the return addresses on the call stack, oldest first.
func (v *VM) Stack() []uint16 {
	return v.stack.snapshot()
}
