package vm

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: font glyphs
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program image and data
const (
	MemorySize      = 0x1000
	ProgramStart    = 0x200
	ProgramCapacity = MemorySize - ProgramStart
	FontAddress     = 0x000
	GlyphSize       = 5
)

// font contains the 4x5 pixel glyphs of the hexadecimal digits 0-F.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// memory is the flat 4 KiB address space of the machine.
type memory [MemorySize]byte

func newMemory() *memory {
	m := &memory{}
	copy(m[FontAddress:], font[:])
	return m
}

// load copies a program image to ProgramStart. Memory is left untouched if
// the image does not fit.
func (m *memory) load(program []byte) error {
	if len(program) > ProgramCapacity {
		return &CapacityError{Size: len(program), Capacity: ProgramCapacity}
	}
	copy(m[ProgramStart:], program)
	return nil
}

// word reads the big-endian instruction word at the given address.
func (m *memory) word(address uint16) (uint16, bool) {
	if int(address)+1 >= MemorySize {
		return 0, false
	}
	return uint16(m[address])<<8 | uint16(m[address+1]), true
}

// span returns the n bytes starting at address, or false if the range
// extends past the end of memory.
func (m *memory) span(address uint16, n int) ([]byte, bool) {
	end := int(address) + n
	if end > MemorySize {
		return nil, false
	}
	return m[address:end], true
}

// glyphAddress returns the address of the font glyph for a hexadecimal digit.
func glyphAddress(digit uint8) uint16 {
	return FontAddress + uint16(digit&0xF)*GlyphSize
}
