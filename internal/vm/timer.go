package vm

import "time"

// TimerFrequency is the rate in Hz at which the delay and sound timers count down.
const TimerFrequency = 60

// timerPeriod is the wall-clock duration of one timer tick.
const timerPeriod = time.Second / TimerFrequency

// timerClock decides when the delay and sound timers are due to tick.
// In wall-clock mode elapsed time is converted into whole ticks and the
// remainder is carried over. In rate mode every instruction adds
// TimerFrequency to an accumulator and a tick is due for every full
// instructionRate in it, giving exactly 60 ticks per instructionRate
// instructions for any rate.
type timerClock struct {
	now   func() time.Time
	last  time.Time
	carry time.Duration

	instructionRate uint64
	accumulator     uint64

	manual bool
}

func newTimerClock(now func() time.Time, instructionRate int, manual bool) *timerClock {
	c := &timerClock{
		now:    now,
		manual: manual,
	}
	if instructionRate > 0 {
		c.instructionRate = uint64(instructionRate)
	} else {
		c.last = now()
	}
	return c
}

// advance is called once per executed instruction and returns the number of
// timer ticks that are due.
func (c *timerClock) advance() int {
	switch {
	case c.manual:
		return 0

	case c.instructionRate > 0:
		c.accumulator += TimerFrequency
		ticks := c.accumulator / c.instructionRate
		c.accumulator -= ticks * c.instructionRate
		return int(ticks)

	default:
		now := c.now()
		elapsed := now.Sub(c.last)
		c.last = now
		if elapsed > 0 {
			c.carry += elapsed
		}
		ticks := c.carry / timerPeriod
		c.carry -= ticks * timerPeriod
		return int(ticks)
	}
}

// countDown decrements a timer by the given number of ticks, clamped at zero.
func countDown(timer uint8, ticks int) uint8 {
	if ticks >= int(timer) {
		return 0
	}
	return timer - uint8(ticks)
}
