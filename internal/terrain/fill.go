// Package terrain grows terrain regions on an overworld map and stamps
// features onto it, consuming the game's random stream in the game's order.
package terrain

import (
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/rng"
)

// startProbes bounds the search for an empty cell to grow a region from.
const startProbes = 2000

type offset struct{ dx, dy int }

// walkOrder is the neighbour order the region walk stamps in: N, W, E, S.
var walkOrder = [4]offset{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// Point is a map position.
type Point struct {
	X, Y int
}

// Fill grows regions of ids[0] over empty cells until count cells have been
// stamped. Each region starts from a random empty cell; every empty
// orthogonal neighbour of the current cell is stamped and the walk moves to
// one of them at random. A region that runs out of empty neighbours ends and
// a new one starts elsewhere. If no empty start is found within 2000 probes
// the fill stops silently, skipping the edge pass.
//
// When four ids are given the filled regions are finished with FixEdges.
func Fill(m *grid.Map, ids []byte, count int, r *rng.Random) {
	neighbors := make([]Point, 0, 4)

	for count > 0 {
		x, y, ok := findEmpty(m, r)
		if !ok {
			return
		}

		m.Tiles[x+y*m.Width].ID = ids[0]
		count--

		for count > 0 {
			neighbors = neighbors[:0]
			for _, d := range walkOrder {
				nx, ny := m.Wrap(x+d.dx, y+d.dy)
				t := &m.Tiles[nx+ny*m.Width]
				if t.ID == grid.Empty {
					count--
					t.ID = ids[0]
					neighbors = append(neighbors, Point{nx, ny})
				}
				// the move below still draws even when nothing is left to stamp
				if count < 1 {
					break
				}
			}

			if len(neighbors) == 0 {
				break
			}

			next := neighbors[r.Rand(uint32(len(neighbors)))]
			x, y = next.X, next.Y
		}
	}

	if len(ids) == 4 {
		FixEdges(m, ids)
	}
}

func findEmpty(m *grid.Map, r *rng.Random) (int, int, bool) {
	for i := 0; i < startProbes; i++ {
		x := int(r.Rand(uint32(m.Width)))
		y := int(r.Rand(uint32(m.Height)))
		if m.Tiles[x+y*m.Width].ID == grid.Empty {
			return x, y, true
		}
	}
	return 0, 0, false
}

// FillEmpty turns every remaining empty cell into id.
func FillEmpty(m *grid.Map, id byte) {
	for i := range m.Tiles {
		if m.Tiles[i].ID == grid.Empty {
			m.Tiles[i].ID = id
		}
	}
}
