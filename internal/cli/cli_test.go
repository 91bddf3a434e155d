package cli

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, options.Runner, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = append([]string{"prog"}, args...)
	return ParseFlags()
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, runOpts, err := parseArgs(t, "pong.ch8")
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.DefaultSpeed, runOpts.Speed)
	assert.Equal(t, uint64(0), runOpts.MaxCycles)
	assert.Equal(t, time.Duration(0), runOpts.Duration)
	assert.False(t, runOpts.Unthrottled)
	assert.False(t, runOpts.SkipUnknown)
	assert.Len(t, runOpts.KeyPresses, 0)
}

func TestParseFlags_RunnerOptions(t *testing.T) {
	opts, runOpts, err := parseArgs(t,
		"-speed", "1200",
		"-cycles", "5000",
		"-duration", "2s",
		"-seed", "42",
		"-skip-unknown",
		"-unthrottled",
		"-trace",
		"-s", "chip8",
		"-keys", "5@10-20,A@30",
		"-break", "2A0,0x300",
		"pong.ch8",
	)
	assert.NoError(t, err)
	assert.True(t, opts.Debug, "trace implies debug")
	assert.Equal(t, 1200, runOpts.Speed)
	assert.Equal(t, uint64(5000), runOpts.MaxCycles)
	assert.Equal(t, 2*time.Second, runOpts.Duration)
	assert.Equal(t, int64(42), runOpts.Seed)
	assert.True(t, runOpts.SkipUnknown)
	assert.True(t, runOpts.Unthrottled)
	assert.True(t, runOpts.Trace)
	assert.Equal(t, arch.CHIP8System, runOpts.System)
	assert.Equal(t, []options.KeyPress{
		{Key: 5, From: 10, To: 20},
		{Key: 0xA, From: 30, To: 31},
	}, runOpts.KeyPresses)
	assert.True(t, runOpts.Breakpoints.Contains(0x2A0))
	assert.True(t, runOpts.Breakpoints.Contains(0x300))
	assert.False(t, runOpts.Breakpoints.Contains(0x200))
}

func TestParseFlags_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "no input",
			args: nil,
		},
		{
			name: "argument after input file",
			args: []string{"pong.ch8", "-debug"},
		},
		{
			name: "unknown flag",
			args: []string{"-unknown", "pong.ch8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseArgs(t, tt.args...)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_Version(t *testing.T) {
	opts, _, err := parseArgs(t, "-version")
	assert.NoError(t, err)
	assert.True(t, opts.Version)
}

func TestParseFlags_InputFlag(t *testing.T) {
	opts, _, err := parseArgs(t, "-i", "pong.ch8")
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Input)
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "zero speed",
			args:    []string{"-speed", "0", "pong.ch8"},
			wantErr: errInvalidSpeed,
		},
		{
			name:    "unthrottled without limit",
			args:    []string{"-unthrottled", "pong.ch8"},
			wantErr: errUnboundedRun,
		},
		{
			name:    "invalid key",
			args:    []string{"-keys", "G@1", "pong.ch8"},
			wantErr: errInvalidKeyPress,
		},
		{
			name:    "invalid breakpoint",
			args:    []string{"-break", "1000", "pong.ch8"},
			wantErr: errInvalidBreakpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseArgs(t, tt.args...)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestParseKeyPresses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []options.KeyPress
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "single frame",
			input: "F@0",
			want:  []options.KeyPress{{Key: 0xF, From: 0, To: 1}},
		},
		{
			name:  "range with spaces",
			input: "1@2-4, c@5-6",
			want: []options.KeyPress{
				{Key: 1, From: 2, To: 4},
				{Key: 0xC, From: 5, To: 6},
			},
		},
		{
			name:    "missing frame",
			input:   "5",
			wantErr: true,
		},
		{
			name:    "key out of range",
			input:   "10@1",
			wantErr: true,
		},
		{
			name:    "empty range",
			input:   "5@4-4",
			wantErr: true,
		},
		{
			name:    "negative frame",
			input:   "5@-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseKeyPresses(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errInvalidKeyPress))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBreakpoints(t *testing.T) {
	runOpts := options.NewRunner("")
	assert.NoError(t, parseBreakpoints("0X2a0, FFF", runOpts))
	assert.True(t, runOpts.Breakpoints.Contains(0x2A0))
	assert.True(t, runOpts.Breakpoints.Contains(0xFFF))

	err := parseBreakpoints("zz", runOpts)
	assert.True(t, errors.Is(err, errInvalidBreakpoint))
}
