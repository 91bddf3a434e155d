// Package detector handles system architecture detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from the system option or, if
// none is given, from the input filename extension.
func (d *Detector) Detect(system, input string) arch.System {
	detected, _ := arch.SystemFromString(system)
	if detected == "" {
		detected = d.detectFromFile(input)
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", detected),
			log.String("file", input))
	}
	return detected
}

// Supported returns an error if programs of the system can not be executed.
func Supported(system arch.System) error {
	if system != arch.CHIP8System {
		return fmt.Errorf("unsupported system: %s", system)
	}
	return nil
}

// detectFromFile determines the system type based on file extension.
// CHIP-8 images have no header, so anything that is not a known cartridge
// format is treated as a CHIP-8 program.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
