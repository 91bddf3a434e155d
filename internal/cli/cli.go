// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

var (
	errInvalidSpeed       = errors.New("speed must be greater than zero")
	errUnboundedRun       = errors.New("unthrottled runs need a -cycles or -duration limit")
	errInvalidKeyPress    = errors.New("invalid key press")
	errInvalidBreakpoint  = errors.New("invalid breakpoint")
	errArgumentAfterInput = errors.New("argument found after file to run")
)

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {} // parse errors are reported, usage is shown by the caller
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if opts.Version {
		return opts, options.Runner{}, nil
	}
	if err != nil || (len(args) == 0 && opts.Batch == "" && opts.Input == "") {
		return opts, options.Runner{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	if opts.Trace {
		opts.Debug = true
	}

	runOpts, err := createRunnerOptions(opts)
	if err != nil {
		return opts, options.Runner{}, err
	}
	return opts, runOpts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <file to run>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.PrintDefaults()
		fmt.Println()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("%s: %s, please pass the file to run as last argument", errArgumentAfterInput, arg),
			}
		}
	}
	return nil
}

// createRunnerOptions validates the execution flags and converts them to runner options.
func createRunnerOptions(opts options.Program) (options.Runner, error) {
	if opts.Speed <= 0 {
		return options.Runner{}, fmt.Errorf("%w: %d", errInvalidSpeed, opts.Speed)
	}
	if opts.Unthrottled && opts.Cycles == 0 && opts.Duration == 0 {
		return options.Runner{}, errUnboundedRun
	}

	runOpts := options.NewRunner(opts.System)
	runOpts.Speed = opts.Speed
	runOpts.MaxCycles = opts.Cycles
	runOpts.Duration = opts.Duration
	runOpts.Seed = opts.Seed
	runOpts.SkipUnknown = opts.SkipUnknown
	runOpts.Trace = opts.Trace
	runOpts.Unthrottled = opts.Unthrottled

	presses, err := parseKeyPresses(opts.Keys)
	if err != nil {
		return options.Runner{}, err
	}
	runOpts.KeyPresses = presses

	if err := parseBreakpoints(opts.Breakpoints, runOpts); err != nil {
		return options.Runner{}, err
	}
	return runOpts, nil
}

// parseKeyPresses parses a comma separated list of key@from-to entries.
// Key is a hexadecimal keypad key, from and to are frame numbers, the key is
// released at frame to. Without -to the key is held for a single frame.
func parseKeyPresses(s string) ([]options.KeyPress, error) {
	if s == "" {
		return nil, nil
	}

	var presses []options.KeyPress
	for entry := range strings.SplitSeq(s, ",") {
		entry = strings.TrimSpace(entry)
		keyString, frames, ok := strings.Cut(entry, "@")
		if !ok {
			return nil, fmt.Errorf("%w '%s': missing frame", errInvalidKeyPress, entry)
		}

		key, err := strconv.ParseUint(keyString, 16, 8)
		if err != nil || key >= vm.KeyCount {
			return nil, fmt.Errorf("%w '%s': key must be 0-F", errInvalidKeyPress, entry)
		}

		fromString, toString, hasTo := strings.Cut(frames, "-")
		from, err := strconv.Atoi(fromString)
		if err != nil || from < 0 {
			return nil, fmt.Errorf("%w '%s': invalid start frame", errInvalidKeyPress, entry)
		}
		to := from + 1
		if hasTo {
			to, err = strconv.Atoi(toString)
			if err != nil || to <= from {
				return nil, fmt.Errorf("%w '%s': invalid end frame", errInvalidKeyPress, entry)
			}
		}

		presses = append(presses, options.KeyPress{
			Key:  uint8(key),
			From: from,
			To:   to,
		})
	}
	return presses, nil
}

// parseBreakpoints parses a comma separated list of hexadecimal addresses
// with an optional 0x prefix into the breakpoint set of the runner options.
func parseBreakpoints(s string, runOpts options.Runner) error {
	if s == "" {
		return nil
	}

	for entry := range strings.SplitSeq(s, ",") {
		entry = strings.TrimSpace(entry)
		digits := strings.TrimPrefix(strings.ToLower(entry), "0x")
		address, err := strconv.ParseUint(digits, 16, 16)
		if err != nil || address >= vm.MemorySize {
			return fmt.Errorf("%w '%s': address must be 000-FFF", errInvalidBreakpoint, entry)
		}
		runOpts.Breakpoints.Add(uint16(address))
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the final machine state, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .txt file naming, for example *.ch8")
	flags.StringVar(&opts.System, "s", "", "system to run (chip8) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print version information and exit")

	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions per second")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after this many instructions (0: no limit)")
	flags.DurationVar(&opts.Duration, "duration", 0, "stop after this wall-clock duration, for example 10s (0: no limit)")
	flags.StringVar(&opts.Keys, "keys", "", "scripted key presses as key@from-to in frames, for example 5@10-20,A@30")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hex addresses to stop at, for example 2A0,0x300")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed for the RND instruction (0: time based)")
	flags.BoolVar(&opts.SkipUnknown, "skip-unknown", false, "skip unknown opcodes instead of stopping")
	flags.BoolVar(&opts.Unthrottled, "unthrottled", false, "run as fast as possible, timers follow the instruction rate")
}
