package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	tmpDir := t.TempDir()

	input := filepath.Join(tmpDir, "clear.ch8")
	program := []byte{
		0x00, 0xE0, // CLS
		0x12, 0x02, // JP 202
	}
	assert.NoError(t, os.WriteFile(input, program, 0600))

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: GenerateOutputFilename(input),
		},
	}
	runOpts := options.NewRunner("")
	runOpts.Unthrottled = true
	runOpts.MaxCycles = 10

	err := ProcessFile(context.Background(), logger, opts, runOpts)
	assert.NoError(t, err)

	output, err := os.ReadFile(filepath.Join(tmpDir, "clear.txt"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(output), "; stopped: cycle limit reached\n; cycles: 10 "))
}

func TestProcessFileMissingInput(t *testing.T) {
	logger := log.NewTestLogger(t)
	tmpDir := t.TempDir()

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  filepath.Join(tmpDir, "missing.ch8"),
			Output: filepath.Join(tmpDir, "missing.txt"),
		},
	}

	err := ProcessFile(context.Background(), logger, opts, options.NewRunner(""))
	assert.ErrorContains(t, err, "opening file")
}

func TestGetFilesToProcess(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte{0x00, 0xE0}, 0600))
	}

	t.Run("single input", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{Input: "game.ch8"}}
		files, err := GetFilesToProcess(&opts)
		assert.NoError(t, err)
		assert.Equal(t, []string{"game.ch8"}, files)
	})

	t.Run("batch pattern", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(tmpDir, "*.ch8")}}
		files, err := GetFilesToProcess(&opts)
		assert.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(tmpDir, "a.ch8"), filepath.Join(tmpDir, "b.ch8")}, files)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{Batch: "["}}
		_, err := GetFilesToProcess(&opts)
		assert.ErrorContains(t, err, "globbing batch pattern")
	})
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "games/pong.txt", GenerateOutputFilename("games/pong.ch8"))
	assert.Equal(t, "pong.txt", GenerateOutputFilename("pong"))
}
