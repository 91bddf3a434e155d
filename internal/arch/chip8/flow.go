package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Flow classifies how an instruction changes the program counter.
type Flow int

const (
	FlowNext   Flow = iota // continues with the next instruction
	FlowJump               // jp, absolute or indexed by V0
	FlowCall               // call, pushes the return address
	FlowReturn             // ret, pops the return address
	FlowSkip               // conditionally skips the next instruction
)

var flowNames = [...]string{
	FlowNext:   "",
	FlowJump:   "jump",
	FlowCall:   "call",
	FlowReturn: "return",
	FlowSkip:   "skip",
}

func (f Flow) String() string {
	if f < 0 || int(f) >= len(flowNames) {
		return ""
	}
	return flowNames[f]
}

// Flow returns the control flow class of the decoded instruction.
// Unknown words continue with the next instruction.
func (d Decoded) Flow() Flow {
	ins := d.Opcode.op.Instruction
	switch {
	case ins == nil:
		return FlowNext
	case ins == chip8.JpInst:
		return FlowJump
	case ins == chip8.CallInst:
		return FlowCall
	case ins == chip8.RetInst:
		return FlowReturn
	case chip8.SkipInstructions.Contains(ins.Name):
		return FlowSkip
	default:
		return FlowNext
	}
}

// Target returns the destination of an absolute jump or a call. Indexed
// jumps depend on V0 and have no static target.
func (d Decoded) Target() (uint16, bool) {
	switch d.Word & 0xF000 {
	case 0x1000, 0x2000:
		return d.Word & 0x0FFF, true
	default:
		return 0, false
	}
}
