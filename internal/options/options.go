// Package options contains the program options.
package options

import (
	"time"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/set"
)

// DefaultSpeed is the default instruction rate in instructions per second.
const DefaultSpeed = 700

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for the final display (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	System  string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Trace   bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
	Version bool   `flag:"version" usage:"print version information and exit"`
}

// ExecutionFlags contains options that control the program execution.
type ExecutionFlags struct {
	Speed       int           `flag:"speed" usage:"instructions per second" default:"700"`
	Cycles      uint64        `flag:"cycles" usage:"stop after this many instructions (0: no limit)"`
	Duration    time.Duration `flag:"duration" usage:"stop after this wall-clock duration (0: no limit)"`
	Keys        string        `flag:"keys" usage:"scripted key presses key@from-to in frames, e.g. 5@10-20,A@30"`
	Breakpoints string        `flag:"break" usage:"comma separated hex addresses to stop at, e.g. 2A0,0x300"`
	Seed        int64         `flag:"seed" usage:"random seed for the RND instruction (0: time based)"`
	SkipUnknown bool          `flag:"skip-unknown" usage:"skip unknown opcodes instead of stopping"`
	Unthrottled bool          `flag:"unthrottled" usage:"run as fast as possible, timers follow the instruction rate"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	ExecutionFlags
}

// KeyPress holds a key down for the frames [From, To).
type KeyPress struct {
	Key  uint8
	From int
	To   int
}

// Active returns whether the key is held down during the given frame.
func (k KeyPress) Active(frame int) bool {
	return frame >= k.From && frame < k.To
}

// Runner defines options to control the execution of a program.
type Runner struct {
	System arch.System // system type, only chip8 can be executed

	Speed       int           // instructions per second
	MaxCycles   uint64        // stop after this many instructions, 0 for no limit
	Duration    time.Duration // stop after this wall-clock duration, 0 for no limit
	Seed        int64         // random seed, 0 for a time based seed
	Breakpoints set.Set[uint16]
	KeyPresses  []KeyPress

	SkipUnknown bool // skip unknown opcodes instead of stopping
	Trace       bool // log every executed instruction
	Unthrottled bool // do not pace frames by wall-clock time
}

// NewRunner returns a new options instance with default options.
// An unknown system name results in an empty system that is detected later.
func NewRunner(system string) Runner {
	sys, _ := arch.SystemFromString(system)
	return Runner{
		System:      sys,
		Speed:       DefaultSpeed,
		Breakpoints: set.New[uint16](),
	}
}
