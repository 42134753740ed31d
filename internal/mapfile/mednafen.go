package mapfile

import (
	"fmt"
	"os"

	"github.com/vhtoolkit/overworld/internal/grid"
)

// DumpSize is the size of an overworld RAM dump taken from the Mednafen
// emulator.
const DumpSize = grid.Size * 3

// DecodeMednafen reads an overworld tile array dumped from emulator RAM.
// The dump stores memory as 16-bit words with their bytes swapped, so each
// six-byte group holds two tiles in a shuffled order.
func DecodeMednafen(raw []byte) (*grid.Map, error) {
	if len(raw) < DumpSize {
		return nil, fmt.Errorf("%w: dump is %d bytes, want %d", ErrBadSize, len(raw), DumpSize)
	}

	m := grid.New()
	for i := 0; i < grid.Size/2; i++ {
		b := raw[i*6 : i*6+6]
		m.Tiles[i*2] = grid.Tile{ID: b[1], Rotation: int8(b[0]), Height: int8(b[3])}
		m.Tiles[i*2+1] = grid.Tile{ID: b[2], Rotation: int8(b[5]), Height: int8(b[4])}
	}
	return m, nil
}

// LoadMednafen reads a dump file.
func LoadMednafen(path string) (*grid.Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	m, err := DecodeMednafen(raw)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return m, nil
}
