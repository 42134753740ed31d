package terrain

import "github.com/vhtoolkit/overworld/internal/grid"

// Edge variants, indexing the ids passed to FixEdges.
const (
	variantBase = iota
	variantEdge
	variantOuterCorner
	variantInnerCorner
)

type edgeCase struct {
	variant  int
	rotation int8
}

// orthogonalCases is indexed by N<<3 | W<<2 | E<<1 | S, where a set bit
// means that neighbour carries the base id. The fully surrounded case (15)
// is resolved by diagonalCase.
var orthogonalCases = [16]edgeCase{
	0b0000: {variantBase, 0},        // isolated
	0b0001: {variantEdge, 0},        // northern protrusion
	0b0010: {variantEdge, 3},        // western protrusion
	0b0011: {variantOuterCorner, 0}, // north-west outer corner
	0b0100: {variantEdge, 1},        // eastern protrusion
	0b0101: {variantOuterCorner, 1}, // north-east outer corner
	0b0110: {variantBase, 0},        // east-west bridge
	0b0111: {variantEdge, 0},        // northern edge
	0b1000: {variantEdge, 2},        // southern protrusion
	0b1001: {variantBase, 0},        // north-south bridge
	0b1010: {variantOuterCorner, 3}, // south-west outer corner
	0b1011: {variantEdge, 3},        // western edge
	0b1100: {variantOuterCorner, 2}, // south-east outer corner
	0b1101: {variantEdge, 1},        // eastern edge
	0b1110: {variantEdge, 2},        // southern edge
}

// diagonalCase picks an inside corner when exactly one diagonal is open.
// Every other diagonal combination, including none open, stays base.
func diagonalCase(nw, ne, se, sw bool) edgeCase {
	switch {
	case !nw && ne && se && sw:
		return edgeCase{variantInnerCorner, 0}
	case nw && !ne && se && sw:
		return edgeCase{variantInnerCorner, 1}
	case nw && ne && !se && sw:
		return edgeCase{variantInnerCorner, 2}
	case nw && ne && se && !sw:
		return edgeCase{variantInnerCorner, 3}
	default:
		return edgeCase{variantBase, 0}
	}
}

// FixEdges reclassifies every tile carrying ids[0] by which neighbours also
// carry it: ids[1] is the edge tile, ids[2] the outside corner and ids[3]
// the inside corner. Rotation encodes the side facing other terrain.
// Neighbours are read from the map as it was before the pass.
func FixEdges(m *grid.Map, ids []byte) {
	base := ids[0]
	snapshot := make([]grid.Tile, len(m.Tiles))
	copy(snapshot, m.Tiles)

	is := func(x, y int) bool {
		return snapshot[m.Index(x, y)].ID == base
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if snapshot[x+y*m.Width].ID != base {
				continue
			}

			key := 0
			if is(x, y-1) {
				key |= 0b1000
			}
			if is(x-1, y) {
				key |= 0b0100
			}
			if is(x+1, y) {
				key |= 0b0010
			}
			if is(x, y+1) {
				key |= 0b0001
			}

			c := orthogonalCases[key]
			if key == 0b1111 {
				c = diagonalCase(is(x-1, y-1), is(x+1, y-1), is(x+1, y+1), is(x-1, y+1))
			}

			t := &m.Tiles[x+y*m.Width]
			t.ID = ids[c.variant]
			t.Rotation = c.rotation
		}
	}
}
