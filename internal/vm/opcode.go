package vm

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Operands are the operand fields of an instruction word.
type Operands struct {
	X   uint8  // register index, bits 8-11
	Y   uint8  // register index, bits 4-7
	N   uint8  // nibble, bits 0-3
	KK  uint8  // byte, bits 0-7
	NNN uint16 // address, bits 0-11
}

func decodeOperands(word uint16) Operands {
	return Operands{
		X:   uint8((word & 0x0F00) >> 8),
		Y:   uint8((word & 0x00F0) >> 4),
		N:   uint8(word & 0x000F),
		KK:  uint8(word & 0x00FF),
		NNN: word & 0x0FFF,
	}
}

type handler func(*VM, Operands) error

// opcode is an entry of the dispatch table. An instruction word is encoded
// by the entry if word&Mask == Value.
type opcode struct {
	chip8cpu.OpcodeInfo
	exec handler
}

// handlers maps the encoding value of every opcode to its implementation.
var handlers = map[uint16]handler{
	0x00E0: (*VM).clearScreen,
	0x00EE: (*VM).returnFromSubroutine,
	0x1000: (*VM).jump,
	0x2000: (*VM).call,
	0x3000: (*VM).skipIfEqualByte,
	0x4000: (*VM).skipIfNotEqualByte,
	0x5000: (*VM).skipIfEqual,
	0x6000: (*VM).loadByte,
	0x7000: (*VM).addByte,
	0x8000: (*VM).loadRegister,
	0x8001: (*VM).or,
	0x8002: (*VM).and,
	0x8003: (*VM).xor,
	0x8004: (*VM).add,
	0x8005: (*VM).sub,
	0x8006: (*VM).shiftRight,
	0x8007: (*VM).subn,
	0x800E: (*VM).shiftLeft,
	0x9000: (*VM).skipIfNotEqual,
	0xA000: (*VM).loadIndex,
	0xB000: (*VM).jumpIndexed,
	0xC000: (*VM).randomByte,
	0xD000: (*VM).draw,
	0xE09E: (*VM).skipIfPressed,
	0xE0A1: (*VM).skipIfNotPressed,
	0xF007: (*VM).loadDelayTimer,
	0xF00A: (*VM).waitForKey,
	0xF015: (*VM).setDelayTimer,
	0xF018: (*VM).setSoundTimer,
	0xF01E: (*VM).addIndex,
	0xF029: (*VM).loadGlyph,
	0xF033: (*VM).storeBCD,
	0xF055: (*VM).storeRegisters,
	0xF065: (*VM).loadRegisters,
}

// opcodes is the dispatch table, indexed by the top nibble of the instruction
// word. The encodings come from the CHIP-8 opcode table of retrogolib, entries
// without a handler are treated as unknown opcodes.
var opcodes = newDispatchTable(chip8cpu.Opcodes)

func newDispatchTable(table [16][]chip8cpu.Opcode) [16][]opcode {
	var dispatch [16][]opcode
	for nibble, entries := range table {
		for _, entry := range entries {
			exec, ok := handlers[entry.Info.Value]
			if !ok || entry.Instruction == nil {
				continue
			}
			dispatch[nibble] = append(dispatch[nibble], opcode{
				OpcodeInfo: entry.Info,
				exec:       exec,
			})
		}
	}
	return dispatch
}

// lookup returns the dispatch table entry that encodes the instruction word.
func lookup(word uint16) (opcode, bool) {
	for _, op := range opcodes[word>>12] {
		if word&op.Mask == op.Value {
			return op, true
		}
	}
	return opcode{}, false
}
