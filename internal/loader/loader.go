// Package loader handles program image loading operations.
package loader

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw program image from the given file. CHIP-8 images have
// no header, the file content is returned as is.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening file %s", path)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "loading file %s", path)
	}
	return data, nil
}

// LoadReader reads a raw program image. At most one byte more than the
// program capacity is read so that oversized images are still reported by
// the machine without reading arbitrarily large inputs.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, vm.ProgramCapacity+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading program image")
	}
	if len(data) == 0 {
		return nil, errors.New("empty program image")
	}
	return data, nil
}
