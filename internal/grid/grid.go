// Package grid holds the fixed-size toroidal overworld map and its tiles.
package grid

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const (
	Width  = 50
	Height = 50
	Size   = Width * Height
)

// Map is a 50x50 row-major tile grid that wraps at all four edges.
type Map struct {
	Width, Height int
	Tiles         []Tile

	// Features are the placed landmarks in placement order.
	Features []Feature
}

// New returns an empty map.
func New() *Map {
	return &Map{
		Width:  Width,
		Height: Height,
		Tiles:  make([]Tile, Size),
	}
}

// FromTiles wraps a slice of exactly Size tiles.
func FromTiles(tiles []Tile) *Map {
	m := New()
	copy(m.Tiles, tiles)
	return m
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	c := &Map{
		Width:  m.Width,
		Height: m.Height,
		Tiles:  make([]Tile, len(m.Tiles)),
	}
	copy(c.Tiles, m.Tiles)
	if len(m.Features) > 0 {
		c.Features = append([]Feature(nil), m.Features...)
	}
	return c
}

// Wrap folds any coordinate pair onto the map.
func (m *Map) Wrap(x, y int) (int, int) {
	x %= m.Width
	if x < 0 {
		x += m.Width
	}
	y %= m.Height
	if y < 0 {
		y += m.Height
	}
	return x, y
}

// Index returns the flat index of a wrapped coordinate pair.
func (m *Map) Index(x, y int) int {
	x, y = m.Wrap(x, y)
	return x + y*m.Width
}

// At returns the tile at a wrapped coordinate pair.
func (m *Map) At(x, y int) *Tile {
	return &m.Tiles[m.Index(x, y)]
}

// Count returns how many tiles carry id.
func (m *Map) Count(id byte) int {
	n := 0
	for _, t := range m.Tiles {
		if t.ID == id {
			n++
		}
	}
	return n
}

// Find returns the position of the first tile carrying id in row-major order.
func (m *Map) Find(id byte) (x, y int, ok bool) {
	for i, t := range m.Tiles {
		if t.ID == id {
			return i % m.Width, i / m.Width, true
		}
	}
	return 0, 0, false
}

// Equal compares the tile grids only.
func (m *Map) Equal(other *Map) bool {
	if m.Width != other.Width || m.Height != other.Height || len(m.Tiles) != len(other.Tiles) {
		return false
	}
	for i := range m.Tiles {
		if m.Tiles[i] != other.Tiles[i] {
			return false
		}
	}
	return true
}

// Digest is a BLAKE2b-256 hash of the tile grid, hex encoded.
func (m *Map) Digest() string {
	buf := make([]byte, 0, len(m.Tiles)*3)
	for _, t := range m.Tiles {
		buf = append(buf, t.ID, byte(t.Rotation), byte(t.Height))
	}
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Rotate turns the whole map by a quarter turn count in 1..3; any other
// value leaves it untouched. Tile rotations move the opposite way to the map.
func (m *Map) Rotate(rotation int) {
	if rotation < 1 || rotation > 3 {
		return
	}

	tiles := make([]Tile, 0, len(m.Tiles))
	push := func(x, y int) {
		t := m.Tiles[x+y*m.Width]
		t.Rotation = (t.Rotation + int8(4-rotation)) % 4
		tiles = append(tiles, t)
	}

	switch rotation {
	case 1:
		for x := m.Width - 1; x >= 0; x-- {
			for y := 0; y < m.Height; y++ {
				push(x, y)
			}
		}
	case 2:
		for y := m.Height - 1; y >= 0; y-- {
			for x := m.Width - 1; x >= 0; x-- {
				push(x, y)
			}
		}
	case 3:
		for x := 0; x < m.Width; x++ {
			for y := m.Height - 1; y >= 0; y-- {
				push(x, y)
			}
		}
	}
	m.Tiles = tiles
}
