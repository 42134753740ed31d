package route

import (
	"github.com/zyedidia/generic/stack"

	"github.com/vhtoolkit/overworld/internal/grid"
)

// Unreached is the heat of a cell the flood never entered.
const Unreached uint8 = 255

// Dir is a set of compass directions. In the flood it names the side a
// cell was entered from.
type Dir uint8

const (
	N Dir = 1 << iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

// HeatMap holds hop counts from (X0, Y0) to every cell.
type HeatMap struct {
	Width, Height int
	X0, Y0        int
	Heat          []uint8
}

// At returns the hop count at (x, y), or Unreached.
func (h *HeatMap) At(x, y int) uint8 {
	return h.Heat[x+y*h.Width]
}

type visit struct {
	x, y int
	heat uint8
	from Dir
}

// neighbour offsets with the side the neighbour sees us arriving from
var spread = [8]struct {
	dx, dy int
	from   Dir
}{
	{-1, -1, SE},
	{0, -1, S},
	{1, -1, SW},
	{-1, 0, E},
	{1, 0, W},
	{-1, 1, NE},
	{0, 1, N},
	{1, 1, NW},
}

// Heat floods outward from (x0, y0) over all eight neighbours and returns
// the hop count to every cell. Tiles may refuse entry depending on the side
// they are entered from; a refused cell keeps Unreached. A cell is only
// revisited when it can be reached in strictly fewer hops, which is what
// ends the flood. The origin wraps like any other coordinate.
func Heat(m *grid.Map, x0, y0 int) *HeatMap {
	x0, y0 = m.Wrap(x0, y0)
	h := &HeatMap{
		Width:  m.Width,
		Height: m.Height,
		X0:     x0,
		Y0:     y0,
		Heat:   make([]uint8, len(m.Tiles)),
	}
	for i := range h.Heat {
		h.Heat[i] = Unreached
	}

	todo := stack.New[visit]()
	todo.Push(visit{x0, y0, 0, N})

	for todo.Size() > 0 {
		v := todo.Pop()
		i := v.x + v.y*m.Width

		heat := v.heat
		if !enterable(m.Tiles[i], v.from) {
			heat = Unreached
		}
		if heat >= h.Heat[i] {
			continue
		}
		h.Heat[i] = heat

		for _, s := range spread {
			nx, ny := m.Wrap(v.x+s.dx, v.y+s.dy)
			todo.Push(visit{nx, ny, heat + 1, s.from})
		}
	}

	return h
}

// enterable reports whether t can be stepped onto from the side from.
func enterable(t grid.Tile, from Dir) bool {
	blockedFrom := func(sides ...Dir) bool {
		r := int(t.Rotation)
		if r < 0 || r >= len(sides) {
			return false
		}
		return from&sides[r] == 0
	}
	onlyFrom := func(sides ...Dir) bool {
		r := int(t.Rotation)
		if r < 0 || r >= len(sides) {
			return false
		}
		return from&sides[r] != 0
	}

	switch t.ID {
	case grid.Water, grid.RiverMouth, grid.River, grid.RiverJunction:
		return false
	case grid.LakeEdge:
		return blockedFrom(S|SW|SE, W|SW|NW, N|NW|NE, E|NE|SE)
	case grid.LakeOuterCorner, grid.MountainEdge:
		return blockedFrom(SE, SW, NW, NE)
	case grid.LakeInnerCorner:
		return onlyFrom(N|E|NE, N|E|NW, S|E|SE, S|W|SW)
	case grid.RiverCorner:
		return blockedFrom(S|E|SE, S|W|SW, N|E|NE, N|E|NW)
	case grid.Spring:
		return blockedFrom(N, E, S, W)
	case grid.Bridge, grid.RiverBridge:
		if t.Rotation == 0 || t.Rotation == 2 {
			return from&(E|W) == 0
		}
		return from&(N|S) == 0
	case 0x17, 0x18, 0x1A:
		// tree clusters, all but 0x19
		return false
	}
	if t.ID >= 0x1C && t.ID <= 0x20 {
		// mountain interior and inside corners
		return false
	}
	return true
}
