package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// Opcode is an entry of the retrogolib CHIP-8 opcode table.
type Opcode struct {
	op chip8.Opcode
}

// Name returns the mnemonic of the opcode, or an empty string for the zero
// value.
func (o Opcode) Name() string {
	if o.op.Instruction == nil {
		return ""
	}
	return o.op.Instruction.Name
}

// LookupOpcode returns the opcode table entry that encodes the given
// instruction word.
func LookupOpcode(word uint16) (Opcode, bool) {
	for _, op := range chip8.Opcodes[word>>12] {
		if word&op.Info.Mask == op.Info.Value && op.Instruction != nil {
			return Opcode{op: op}, true
		}
	}
	return Opcode{}, false
}
