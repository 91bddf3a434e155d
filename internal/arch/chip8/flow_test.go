package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecoded_Flow(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected Flow
	}{
		{"clear screen", 0x00E0, FlowNext},
		{"return", 0x00EE, FlowReturn},
		{"jump", 0x1228, FlowJump},
		{"jump indexed", 0xB300, FlowJump},
		{"call", 0x2300, FlowCall},
		{"skip equal immediate", 0x3A05, FlowSkip},
		{"skip not equal immediate", 0x4A05, FlowSkip},
		{"skip equal register", 0x5120, FlowSkip},
		{"skip not equal register", 0x9120, FlowSkip},
		{"skip pressed", 0xE29E, FlowSkip},
		{"skip not pressed", 0xE2A1, FlowSkip},
		{"load", 0x6A05, FlowNext},
		{"draw", 0xD125, FlowNext},
		{"wait key", 0xF30A, FlowNext},
		{"unknown", 0xFFFF, FlowNext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := Decode(tt.word)
			assert.Equal(t, tt.expected, d.Flow())
		})
	}
}

func TestDecoded_Target(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		target   uint16
		hasValue bool
	}{
		{"jump", 0x1228, 0x228, true},
		{"call", 0x2ABC, 0xABC, true},
		{"jump indexed", 0xB300, 0, false},
		{"return", 0x00EE, 0, false},
		{"skip", 0x3A05, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := Decode(tt.word)
			target, ok := d.Target()
			assert.Equal(t, tt.hasValue, ok)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestFlow_String(t *testing.T) {
	assert.Equal(t, "", FlowNext.String())
	assert.Equal(t, "call", FlowCall.String())
	assert.Equal(t, "skip", FlowSkip.String())
	assert.Equal(t, "", Flow(42).String())
}
