// Package pipeline orchestrates the program execution stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	resultwriter "github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete execution workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new execution pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute detects the system of the input file, loads and runs the program
// and writes the final machine state to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, runOpts options.Runner, writer io.Writer) (runner.Result, error) {
	system := p.detector.Detect(opts.System, opts.Input)
	if err := detector.Supported(system); err != nil {
		return runner.Result{}, err
	}
	runOpts.System = system

	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return runner.Result{}, fmt.Errorf("loading program: %w", err)
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(data)),
		log.Int("speed", runOpts.Speed))

	return p.ExecuteWithProgram(ctx, data, runOpts, writer)
}

// ExecuteWithProgram runs a program image that is already in memory.
// The final state is written also when the run ends with an error.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, data []byte, runOpts options.Runner, writer io.Writer) (runner.Result, error) {
	machine := config.CreateMachine(p.logger, runOpts)
	if err := machine.Load(data); err != nil {
		return runner.Result{}, fmt.Errorf("loading program: %w", err)
	}

	run := runner.New(p.logger, machine, runOpts)
	result, runErr := run.Run(ctx)

	p.logger.Debug("Execution stopped",
		log.Stringer("reason", result.Reason),
		log.Int("cycles", int(result.Cycles)),
		log.Int("frames", result.Frames))

	if result.Reason != runner.ReasonCancelled {
		report := resultwriter.New(writer, resultwriter.DefaultOptions())
		if err := report.Write(result); err != nil {
			return result, fmt.Errorf("writing result: %w", err)
		}
	}
	return result, runErr
}
