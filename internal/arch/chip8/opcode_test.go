package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookupOpcode(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"clear screen", 0x00E0, chip8.ClsName},
		{"return", 0x00EE, chip8.RetName},
		{"jump", 0x1228, chip8.JpName},
		{"call", 0x2300, chip8.CallName},
		{"skip equal", 0x3A05, chip8.SeName},
		{"skip not equal", 0x4A05, chip8.SneName},
		{"or", 0x8121, chip8.OrName},
		{"and", 0x8122, chip8.AndName},
		{"xor", 0x8123, chip8.XorName},
		{"random", 0xC30F, chip8.RndName},
		{"draw", 0xD125, chip8.DrwName},
		{"skip pressed", 0xE29E, chip8.SkpName},
		{"skip not pressed", 0xE2A1, chip8.SknpName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := LookupOpcode(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, op.Name())
		})
	}
}

func TestLookupOpcode_Unknown(t *testing.T) {
	op, ok := LookupOpcode(0x5121)
	assert.False(t, ok)
	assert.Equal(t, "", op.Name())
}

func TestLookupOpcode_AllFamilies(t *testing.T) {
	for nibble := range 16 {
		opcodes := chip8.Opcodes[nibble]
		assert.NotEmpty(t, opcodes, "Expected opcodes for nibble %X", nibble)

		for _, op := range opcodes {
			opcode := Opcode{op: op}
			assert.NotEmpty(t, opcode.Name())
		}
	}
}
