package vm

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// RandomSource provides the random numbers used by the RND instruction.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Option configures a virtual machine.
type Option func(*options)

type options struct {
	logger          *log.Logger
	trace           bool
	random          RandomSource
	now             func() time.Time
	instructionRate int
	manualTimers    bool
}

func defaultOptions() options {
	return options{
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// WithLogger sets the logger used for instruction trace output.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(enabled bool) Option {
	return func(o *options) {
		o.trace = enabled
	}
}

// WithRandom sets the random source of the RND instruction.
func WithRandom(random RandomSource) Option {
	return func(o *options) {
		o.random = random
	}
}

// WithSeed seeds the random source of the RND instruction for reproducible runs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.random = rand.New(rand.NewSource(seed))
	}
}

// WithClock sets the wall clock that paces the delay and sound timers.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithInstructionRate paces the timers by executed instructions instead of
// wall-clock time, for drivers that call Step at exactly hz instructions per
// second. Over any hz instructions exactly 60 timer ticks happen, also when
// hz is not a multiple of 60.
func WithInstructionRate(hz int) Option {
	return func(o *options) {
		o.instructionRate = hz
	}
}

// WithManualTimers disables timer handling in Step, the driver calls
// TickTimers at 60 Hz instead.
func WithManualTimers() Option {
	return func(o *options) {
		o.manualTimers = true
	}
}
