// Package writer implements the text report of a finished program run.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer writes the machine state of a run result.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	ListingWindow int // instructions listed before and after PC
	DataBytes     int // bytes of memory dumped starting at I
}

// DefaultOptions returns the options used for the program output.
func DefaultOptions() Options {
	return Options{
		ListingWindow: 4,
		DataBytes:     16,
	}
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write writes the header, registers, call stack, code around PC, memory at I
// and the display of the result.
func (w Writer) Write(result runner.Result) error {
	if err := w.writeCommentHeader(result); err != nil {
		return err
	}
	if err := w.writeRegisters(result.Registers); err != nil {
		return err
	}
	if err := w.writeStack(result.Stack); err != nil {
		return err
	}
	if len(result.Memory) > 0 {
		if err := w.writeListing(result.Memory, result.Registers.PC); err != nil {
			return err
		}
		if err := w.writeIndexData(result.Memory, result.Registers.I); err != nil {
			return err
		}
	}
	return w.writeDisplay(result.Frame)
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// writeCommentHeader writes the stop reason and counters as comments.
func (w Writer) writeCommentHeader(result runner.Result) error {
	if _, err := fmt.Fprintf(w.writer, "; stopped: %s\n", result.Reason); err != nil {
		return fmt.Errorf("writing stop reason: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; cycles: %d frames: %d\n\n", result.Cycles, result.Frames); err != nil {
		return fmt.Errorf("writing counters: %w", err)
	}
	return nil
}

func (w Writer) writeRegisters(regs vm.Registers) error {
	lines := []string{
		fmt.Sprintf("PC = $%04X", regs.PC),
		fmt.Sprintf("I  = $%04X", regs.I),
		fmt.Sprintf("SP = %d", regs.SP),
		fmt.Sprintf("DT = $%02X", regs.DelayTimer),
		fmt.Sprintf("ST = $%02X", regs.SoundTimer),
	}
	for i, v := range regs.V {
		lines = append(lines, fmt.Sprintf("V%X = $%02X", i, v))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w.writer, line); err != nil {
			return fmt.Errorf("writing register: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w Writer) writeStack(stack []uint16) error {
	if len(stack) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w.writer, "stack:"); err != nil {
		return fmt.Errorf("writing stack label: %w", err)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintf(w.writer, "  $%04X\n", stack[i]); err != nil {
			return fmt.Errorf("writing stack entry: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// writeListing disassembles the instructions around PC. Addresses below
// ProgramStart hold the font and are not listed.
func (w Writer) writeListing(memory []byte, pc uint16) error {
	if w.options.ListingWindow <= 0 {
		return nil
	}

	window := w.options.ListingWindow * chip8.OpcodeSize
	start := max(vm.ProgramStart, int(pc)-window)
	end := min(len(memory)-chip8.OpcodeSize, int(pc)+window)
	if start > end {
		return nil
	}

	if _, err := fmt.Fprintln(w.writer, "code:"); err != nil {
		return fmt.Errorf("writing code label: %w", err)
	}
	for address := start; address <= end; address += chip8.OpcodeSize {
		word := uint16(memory[address])<<8 | uint16(memory[address+1])
		marker := " "
		if address == int(pc) {
			marker = ">"
		}
		d, _ := chip8.Decode(word)
		if err := w.writeCodeLine(marker, d, address); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// writeCodeLine writes a listing line. Control flow instructions get their
// class and static target appended to the address comment.
func (w Writer) writeCodeLine(marker string, d chip8.Decoded, address int) error {
	comment := fmt.Sprintf("$%04X", address)
	if flow := d.Flow(); flow != chip8.FlowNext {
		comment += " " + flow.String()
		if target, ok := d.Target(); ok {
			comment += fmt.Sprintf(" $%04X", target)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "%s %-30s ; %s\n", marker, d.String(), comment); err != nil {
		return fmt.Errorf("writing code line: %w", err)
	}
	return nil
}

// writeIndexData dumps the memory that the index register points to.
func (w Writer) writeIndexData(memory []byte, index uint16) error {
	start := int(index)
	if w.options.DataBytes <= 0 || start >= len(memory) {
		return nil
	}
	end := min(len(memory), start+w.options.DataBytes)

	if _, err := fmt.Fprintln(w.writer, "data at I:"); err != nil {
		return fmt.Errorf("writing data label: %w", err)
	}

	address := start
	lineWriter := func(line string, byteCount int) error {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; $%04X\n", line, address); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}
		address += byteCount
		return nil
	}
	if err := w.BundleDataWrites(memory[start:end], lineWriter); err != nil {
		return fmt.Errorf("writing index data: %w", err)
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w Writer) writeDisplay(frame vm.Frame) error {
	if _, err := fmt.Fprintf(w.writer, "display: %d pixels lit\n%s", frame.Lit(), frame.String()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}
