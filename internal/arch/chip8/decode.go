package chip8

import "fmt"

// Decoded is an instruction word together with the opcode table entry that
// encodes it.
type Decoded struct {
	Word   uint16
	Opcode Opcode
}

// Decode looks up the opcode table entry for an instruction word.
// It returns false if the word does not encode a known instruction.
func Decode(word uint16) (Decoded, bool) {
	op, ok := LookupOpcode(word)
	if !ok {
		return Decoded{Word: word}, false
	}
	return Decoded{Word: word, Opcode: op}, true
}

// Name returns the instruction name of the decoded word.
func (d Decoded) Name() string {
	return d.Opcode.Name()
}

// String returns the assembly text of the decoded instruction.
func (d Decoded) String() string {
	name := d.Name()
	if name == "" {
		return fmt.Sprintf(".word $%04X", d.Word)
	}
	if params := formatParams(d.Word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Format returns the assembly text of an instruction word, or a data
// directive if the word does not encode a known instruction.
func Format(word uint16) string {
	d, _ := Decode(word)
	return d.String()
}
