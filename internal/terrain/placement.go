package terrain

import (
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/rng"
)

// ExclusionRadius is the half-width of the box around an earlier feature in
// which no new feature may be placed.
const ExclusionRadius = 5

// KeepRotation in a stamp cell leaves the underlying tile's rotation as is.
const KeepRotation int8 = -1

// StampCell is the tile id and rotation written to one cell of a feature.
// Rotations outside 0..3 keep the existing rotation.
type StampCell struct {
	ID       byte
	Rotation int8
}

// Stamp describes a feature to place: Width x Height cells (row-major),
// placed Count times on blocks made entirely of SpawnOn.
type Stamp struct {
	Name    string
	Cells   []StampCell
	Width   int
	Height  int
	Count   int
	SpawnOn byte
}

// Place stamps s.Count copies of the feature at shuffled candidate blocks.
// It returns false without touching the map when there are fewer
// candidates than s.Count.
//
// Only the first copy is appended to placed, so later copies of a
// multi-count stamp do not push other features away.
func Place(m *grid.Map, s Stamp, placed *[]Point, r *rng.Random) bool {
	cands := candidates(m, s, *placed)
	if len(cands) < s.Count {
		return false
	}

	// swap random pairs n/2 times; this is not a uniform shuffle
	n := uint32(len(cands))
	for i := 0; i < len(cands)>>1; i++ {
		a := r.Rand(n)
		b := r.Rand(n)
		cands[a], cands[b] = cands[b], cands[a]
	}

	*placed = append(*placed, cands[0])

	for _, at := range cands[:s.Count] {
		for y2 := 0; y2 < s.Height; y2++ {
			for x2 := 0; x2 < s.Width; x2++ {
				cell := s.Cells[x2+y2*s.Width]
				t := m.At(at.X+x2, at.Y+y2)
				t.ID = cell.ID
				if cell.Rotation >= 0 && cell.Rotation <= 3 {
					t.Rotation = cell.Rotation
				}
			}
		}
		m.Features = append(m.Features, grid.Feature{Tile: *m.At(at.X, at.Y), X: at.X, Y: at.Y})
	}

	return true
}

func candidates(m *grid.Map, s Stamp, placed []Point) []Point {
	out := make([]Point, 0, 400)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[x+y*m.Width].ID != s.SpawnOn {
				continue
			}
			if nearAny(m, x, y, placed) {
				continue
			}
			if !blockIs(m, x, y, s.Width, s.Height, s.SpawnOn) {
				continue
			}
			out = append(out, Point{x, y})
		}
	}

	return out
}

func nearAny(m *grid.Map, x, y int, placed []Point) bool {
	for _, p := range placed {
		if wrapDistance(p.X, x, m.Width) <= ExclusionRadius && wrapDistance(p.Y, y, m.Height) <= ExclusionRadius {
			return true
		}
	}
	return false
}

func blockIs(m *grid.Map, x, y, w, h int, id byte) bool {
	for y2 := y; y2 < y+h; y2++ {
		for x2 := x; x2 < x+w; x2++ {
			if m.At(x2, y2).ID != id {
				return false
			}
		}
	}
	return true
}

// wrapDistance is the distance between a and b on a ring of n cells.
func wrapDistance(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if n-d < d {
		return n - d
	}
	return d
}
