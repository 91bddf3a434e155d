// Package chip8 decodes CHIP-8 instruction words against the retrogolib
// CHIP-8 opcode table and formats them as assembly text.
//
// # Instruction Set
//
// CHIP-8 instructions are 2 bytes, stored big-endian:
//   - The top nibble selects the opcode family
//   - Families 0x0, 0x8, 0xE and 0xF branch further on the low nibble or low byte
//   - Operand fields are x (bits 8-11), y (bits 4-7), n (bits 0-3),
//     kk (bits 0-7) and nnn (bits 0-11)
//
// # Usage Example
//
//	ins, ok := chip8.Decode(0x6A05)
//	if ok {
//		fmt.Println(ins) // ld VA, $05
//	}
//
// The virtual machine uses this package for instruction trace output and to
// name the offending instruction in fault messages.
package chip8
