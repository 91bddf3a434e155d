// Package config turns program options into configured components.
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the given verbosity flags.
// Tracing needs debug level output as instructions are logged at that level.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug, flags.Trace:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachine creates a virtual machine configured for the runner options.
// Unthrottled runs execute faster than real time, their timers are paced by
// the instruction rate instead of the wall clock.
func CreateMachine(logger *log.Logger, opts options.Runner) *vm.VM {
	vmOptions := []vm.Option{
		vm.WithLogger(logger),
		vm.WithTrace(opts.Trace),
	}
	if opts.Seed != 0 {
		vmOptions = append(vmOptions, vm.WithSeed(opts.Seed))
	}
	if opts.Unthrottled {
		vmOptions = append(vmOptions, vm.WithInstructionRate(opts.Speed))
	}
	return vm.New(vmOptions...)
}
