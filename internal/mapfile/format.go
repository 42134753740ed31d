// Package mapfile reads and writes the game's binary overworld map files.
//
// A map file is FileSize bytes long. A 24-byte header sits at HeaderOffset
// and the 2500 tiles follow it at TileOffset as (id, rotation, height)
// byte triples in row-major order. Everything else is zero.
package mapfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vhtoolkit/overworld/internal/grid"
)

const (
	FileSize     = 0x23C4
	HeaderOffset = 0x660
	TileOffset   = 0x678
)

// Header is the fixed header every map file carries: the "MAP " tag, the
// section size, and the 50x50 dimensions.
var Header = [24]byte{
	0x4D, 0x41, 0x50, 0x20,
	0x00, 0x00, 0x1D, 0x64,
	0x00, 0x05,
	0x00, 0x05,
	0x00, 0x32,
	0x00, 0x32,
	0x00, 0x20, 0x00, 0x00,
	0x00, 0x20, 0x00, 0x00,
}

var (
	ErrFormat    = errors.New("mapfile: bad map file")
	ErrBadHeader = fmt.Errorf("%w: header mismatch", ErrFormat)
	ErrBadSize   = fmt.Errorf("%w: wrong size", ErrFormat)
)

// FormatError reports a map file that failed validation.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Validate checks the header and then the length of a map file.
func Validate(data []byte) error {
	if len(data) < TileOffset {
		return ErrBadSize
	}
	if !bytes.Equal(data[HeaderOffset:TileOffset], Header[:]) {
		return ErrBadHeader
	}
	if len(data) != FileSize {
		return ErrBadSize
	}
	return nil
}

// Decode parses a map file.
func Decode(data []byte) (*grid.Map, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	m := grid.New()
	for i := range m.Tiles {
		b := data[TileOffset+i*3:]
		m.Tiles[i] = grid.Tile{
			ID:       b[0],
			Rotation: int8(b[1]),
			Height:   int8(b[2]),
		}
	}
	return m, nil
}

// Encode returns the file image of m.
func Encode(m *grid.Map) []byte {
	data := newContainer()
	for i, t := range m.Tiles {
		b := data[TileOffset+i*3:]
		b[0] = t.ID
		b[1] = byte(t.Rotation)
		b[2] = byte(t.Height)
	}
	return data
}

func newContainer() []byte {
	data := make([]byte, FileSize)
	copy(data[HeaderOffset:], Header[:])
	return data
}

// Load reads and decodes the map file at path.
func Load(path string) (*grid.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return m, nil
}

// Save writes m to path, creating the parent directory if needed.
func Save(path string, m *grid.Map) error {
	return write(path, Encode(m))
}

func write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}
	return nil
}

// CodePath is the file a generated map is saved under.
func CodePath(dir, code string) string {
	return filepath.Join(dir, code+".BIN")
}
