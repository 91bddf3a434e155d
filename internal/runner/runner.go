// Package runner drives a virtual machine without a user interface.
package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// frameDuration is the length of one 60 Hz frame.
const frameDuration = time.Second / vm.TimerFrequency

// Machine is the virtual machine interface used by the runner.
type Machine interface {
	Step() error
	Skip()
	SetKey(key uint8, pressed bool) error
	WaitingForKey() bool
	Registers() vm.Registers
	Cycles() uint64
	Display() vm.Frame
	Stack() []uint16
	Memory() []byte
}

// Reason describes why a run stopped.
type Reason string

const (
	ReasonCycleLimit Reason = "cycle limit reached"
	ReasonDuration   Reason = "duration elapsed"
	ReasonBreakpoint Reason = "breakpoint hit"
	ReasonFault      Reason = "fault"
	ReasonCancelled  Reason = "cancelled"
)

func (r Reason) String() string {
	return string(r)
}

// Result is the machine state at the end of a run.
type Result struct {
	Reason    Reason
	Cycles    uint64
	Frames    int
	Registers vm.Registers
	Stack     []uint16 // return addresses, oldest first
	Frame     vm.Frame
	Memory    []byte // copy of the memory
}

// Runner executes a program frame by frame.
type Runner struct {
	logger  *log.Logger
	machine Machine
	opts    options.Runner

	now          func() time.Time
	scriptedKeys []uint8 // keys with a scripted state, sorted
	held         set.Set[uint8]
	pressed      []uint8 // keys that went down at the start of this frame
	stepBudget   int     // instruction remainder carried between frames
	frames       int
	resumed      bool // skip the breakpoint check for the next step
}

// New returns a runner for the machine. The program has to be loaded already.
func New(logger *log.Logger, machine Machine, opts options.Runner) *Runner {
	keys := set.New[uint8]()
	for _, press := range opts.KeyPresses {
		keys.Add(press.Key)
	}
	scriptedKeys := make([]uint8, 0, len(keys))
	for key := range keys {
		scriptedKeys = append(scriptedKeys, key)
	}
	slices.Sort(scriptedKeys)

	return &Runner{
		logger:       logger,
		machine:      machine,
		opts:         opts,
		now:          time.Now,
		scriptedKeys: scriptedKeys,
		held:         set.New[uint8](),
	}
}

// Run executes the program until a stop condition is met. Over every 60
// frames exactly Speed instructions are executed, the remainder of a frame
// is carried into the next one. Frames are paced to real time unless the
// run is unthrottled. A fault or a cancelled context is returned as error
// together with the state at the time of stopping.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := r.now()

	var ticker *time.Ticker
	if !r.opts.Unthrottled {
		ticker = time.NewTicker(frameDuration)
		defer ticker.Stop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return r.result(ReasonCancelled), err
		}
		if r.opts.Duration > 0 && r.now().Sub(start) >= r.opts.Duration {
			return r.result(ReasonDuration), nil
		}

		if err := r.applyKeys(); err != nil {
			return r.result(ReasonFault), err
		}

		if r.cycleLimitReached() {
			return r.result(ReasonCycleLimit), nil
		}

		reason, err := r.runFrame(r.frameSteps())
		if reason != "" {
			return r.result(reason), err
		}
		r.frames++

		if ticker != nil {
			select {
			case <-ctx.Done():
				return r.result(ReasonCancelled), ctx.Err()
			case <-ticker.C:
			}
		}
	}
}

// Resume continues a run that stopped at a breakpoint.
func (r *Runner) Resume(ctx context.Context) (Result, error) {
	r.resumed = true
	return r.Run(ctx)
}

// frameSteps returns the number of instructions to execute in the next
// frame. Speeds below 60 result in frames without instructions.
func (r *Runner) frameSteps() int {
	r.stepBudget += r.opts.Speed
	steps := r.stepBudget / vm.TimerFrequency
	r.stepBudget -= steps * vm.TimerFrequency
	return steps
}

func (r *Runner) cycleLimitReached() bool {
	return r.opts.MaxCycles > 0 && r.machine.Cycles() >= r.opts.MaxCycles
}

// runFrame executes the instructions of one frame and returns a non empty
// reason if the run has to stop.
func (r *Runner) runFrame(steps int) (Reason, error) {
	for range steps {
		if r.cycleLimitReached() {
			return ReasonCycleLimit, nil
		}

		pc := r.machine.Registers().PC
		if !r.resumed && r.opts.Breakpoints.Contains(pc) {
			r.logger.Debug("Breakpoint hit", log.Hex("pc", pc))
			return ReasonBreakpoint, nil
		}
		r.resumed = false

		waiting := r.machine.WaitingForKey()
		err := r.machine.Step()
		if err == nil {
			if !waiting && r.machine.WaitingForKey() {
				if err := r.redeliverKeys(); err != nil {
					return ReasonFault, err
				}
			}
			continue
		}

		var fault *vm.Fault
		if errors.As(err, &fault) && !fault.Fatal() && r.opts.SkipUnknown {
			r.logger.Debug("Skipping unknown opcode",
				log.Hex("pc", fault.PC),
				log.Hex("opcode", fault.Opcode))
			r.machine.Skip()
			continue
		}
		return ReasonFault, fmt.Errorf("executing program: %w", err)
	}
	return "", nil
}

// applyKeys sets the scripted key states for the current frame.
func (r *Runner) applyKeys() error {
	r.pressed = r.pressed[:0]
	for _, key := range r.scriptedKeys {
		pressed := false
		for _, press := range r.opts.KeyPresses {
			if press.Key == key && press.Active(r.frames) {
				pressed = true
				break
			}
		}
		if err := r.machine.SetKey(key, pressed); err != nil {
			return fmt.Errorf("setting key %X: %w", key, err)
		}

		switch {
		case pressed && !r.held.Contains(key):
			r.held.Add(key)
			r.pressed = append(r.pressed, key)
		case !pressed:
			r.held.Remove(key)
		}
	}
	return nil
}

// redeliverKeys replays the presses of the current frame after a key wait
// began within the frame, so that they satisfy the wait.
func (r *Runner) redeliverKeys() error {
	for _, key := range r.pressed {
		if err := r.machine.SetKey(key, false); err != nil {
			return fmt.Errorf("releasing key %X: %w", key, err)
		}
		if err := r.machine.SetKey(key, true); err != nil {
			return fmt.Errorf("pressing key %X: %w", key, err)
		}
	}
	r.pressed = r.pressed[:0]
	return nil
}

func (r *Runner) result(reason Reason) Result {
	return Result{
		Reason:    reason,
		Cycles:    r.machine.Cycles(),
		Frames:    r.frames,
		Registers: r.machine.Registers(),
		Stack:     r.machine.Stack(),
		Frame:     r.machine.Display(),
		Memory:    slices.Clone(r.machine.Memory()),
	}
}
