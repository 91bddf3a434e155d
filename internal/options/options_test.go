package options

import (
	"testing"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyPressActive(t *testing.T) {
	press := KeyPress{Key: 5, From: 10, To: 12}

	assert.False(t, press.Active(9))
	assert.True(t, press.Active(10))
	assert.True(t, press.Active(11))
	assert.False(t, press.Active(12))
}

func TestNewRunner(t *testing.T) {
	opts := NewRunner("chip8")
	assert.Equal(t, arch.CHIP8System, opts.System)
	assert.Equal(t, DefaultSpeed, opts.Speed)
	assert.NotNil(t, opts.Breakpoints)
	assert.False(t, opts.Breakpoints.Contains(0x200))
}
