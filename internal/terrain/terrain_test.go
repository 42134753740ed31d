package terrain

import (
	"testing"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/rng"
)

var testEdgeIDs = []byte{0x05, 0x06, 0x07, 0x08}

func TestFillStampsExactCount(t *testing.T) {
	for _, count := range []int{1, 7, 200, 600} {
		m := grid.New()
		Fill(m, []byte{grid.Meadow}, count, rng.FromSeed(99))
		if got := m.Count(grid.Meadow); got != count {
			t.Errorf("Fill(count=%d) stamped %d cells", count, got)
		}
	}
}

func TestFillIsDeterministic(t *testing.T) {
	a := grid.New()
	b := grid.New()
	ra := rng.FromSeed(0x1234)
	rb := rng.FromSeed(0x1234)

	Fill(a, []byte{0x25, 0x29, 0x2A, 0x2B}, 600, ra)
	Fill(b, []byte{0x25, 0x29, 0x2A, 0x2B}, 600, rb)

	if !a.Equal(b) {
		t.Error("same seed produced different fills")
	}
	if ra.Seed() != rb.Seed() {
		t.Errorf("generators diverged: %#x vs %#x", ra.Seed(), rb.Seed())
	}
}

func TestFillGolden(t *testing.T) {
	tests := []struct {
		name     string
		seed     uint32
		ids      []byte
		count    int
		digest   string
		wantSeed uint32
	}{
		{
			name:     "forest with edges",
			seed:     0x12345678,
			ids:      []byte{grid.Forest, 0x29, 0x2A, 0x2B},
			count:    600,
			digest:   "4d7692e768e98fb3535e6f6a50a378d726ea10f5bc6e3812a67694257813a334",
			wantSeed: 0x1C5F6860,
		},
		{
			name:     "meadow",
			seed:     0x0BADF00D,
			ids:      []byte{grid.Meadow},
			count:    400,
			digest:   "dae95afca7a41b5179a0582372daf1693497a5be9f0c0cecd1bbba00f32c53d1",
			wantSeed: 0x21C1F436,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := grid.New()
			r := rng.FromSeed(tt.seed)
			Fill(m, tt.ids, tt.count, r)

			// the digest pins the N, W, E, S walk; the seed also pins the
			// draw made after the last cell is stamped
			if got := m.Digest(); got != tt.digest {
				t.Errorf("Digest() = %s, want %s", got, tt.digest)
			}
			if r.Seed() != tt.wantSeed {
				t.Errorf("Seed() = %#x, want %#x", r.Seed(), tt.wantSeed)
			}
		})
	}
}

func TestFillOnlyTouchesEmptyCells(t *testing.T) {
	m := grid.New()
	for x := 0; x < m.Width; x++ {
		m.At(x, 20).ID = grid.Castle
	}
	Fill(m, []byte{grid.Meadow}, 1500, rng.FromSeed(5))

	for x := 0; x < m.Width; x++ {
		if m.At(x, 20).ID != grid.Castle {
			t.Fatalf("fill overwrote a non-empty cell at (%d, 20)", x)
		}
	}
}

func TestFillGivesUpOnFullMap(t *testing.T) {
	m := grid.New()
	FillEmpty(m, grid.Default)
	before := m.Clone()
	r := rng.FromSeed(77)

	Fill(m, testEdgeIDs, 10, r)

	if !m.Equal(before) {
		t.Error("fill changed a map with no empty cells")
	}
	// 2000 probes of two draws each
	want := rng.FromSeed(77)
	for i := 0; i < 2*startProbes; i++ {
		want.Rand(50)
	}
	if r.Seed() != want.Seed() {
		t.Errorf("generator state = %#x, want %#x after the probe budget", r.Seed(), want.Seed())
	}
}

func TestFillEmpty(t *testing.T) {
	m := grid.New()
	m.At(0, 0).ID = grid.Forest
	FillEmpty(m, grid.Default)
	if m.Count(grid.Default) != 2499 || m.At(0, 0).ID != grid.Forest {
		t.Error("FillEmpty touched a non-empty tile or missed an empty one")
	}
}

func fillBlock(m *grid.Map, x0, y0, w, h int, id byte) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			m.At(x, y).ID = id
		}
	}
}

func TestFixEdgesSquare(t *testing.T) {
	m := grid.New()
	fillBlock(m, 10, 10, 3, 3, 0x05)
	FixEdges(m, testEdgeIDs)

	tests := []struct {
		x, y     int
		id       byte
		rotation int8
	}{
		{10, 10, 0x07, 0}, // north-west outer corner
		{12, 10, 0x07, 1}, // north-east outer corner
		{12, 12, 0x07, 2}, // south-east outer corner
		{10, 12, 0x07, 3}, // south-west outer corner
		{11, 10, 0x06, 0},
		{12, 11, 0x06, 1},
		{11, 12, 0x06, 2},
		{10, 11, 0x06, 3},
		{11, 11, 0x05, 0},
	}
	for _, tt := range tests {
		got := m.At(tt.x, tt.y)
		if got.ID != tt.id || got.Rotation != tt.rotation {
			t.Errorf("tile (%d, %d) = id %#x rot %d, want id %#x rot %d", tt.x, tt.y, got.ID, got.Rotation, tt.id, tt.rotation)
		}
	}
}

func TestFixEdgesInsideCorners(t *testing.T) {
	tests := []struct {
		name     string
		openX    int
		openY    int
		rotation int8
	}{
		{"north-west", 10, 10, 0},
		{"north-east", 12, 10, 1},
		{"south-east", 12, 12, 2},
		{"south-west", 10, 12, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := grid.New()
			fillBlock(m, 10, 10, 3, 3, 0x05)
			m.At(tt.openX, tt.openY).ID = grid.Empty
			FixEdges(m, testEdgeIDs)

			got := m.At(11, 11)
			if got.ID != 0x08 || got.Rotation != tt.rotation {
				t.Errorf("centre = id %#x rot %d, want inside corner rot %d", got.ID, got.Rotation, tt.rotation)
			}
		})
	}
}

func TestFixEdgesTwoOpenDiagonalsStaysBase(t *testing.T) {
	m := grid.New()
	fillBlock(m, 10, 10, 3, 3, 0x05)
	m.At(10, 10).ID = grid.Empty
	m.At(12, 12).ID = grid.Empty
	FixEdges(m, testEdgeIDs)

	if got := m.At(11, 11); got.ID != 0x05 || got.Rotation != 0 {
		t.Errorf("centre = id %#x rot %d, want base rot 0", got.ID, got.Rotation)
	}
}

func TestFixEdgesBridgesAndIsolated(t *testing.T) {
	m := grid.New()
	m.At(5, 5).ID = 0x05
	m.At(5, 5).Rotation = 3
	fillBlock(m, 20, 5, 3, 1, 0x05)
	fillBlock(m, 30, 5, 1, 3, 0x05)
	FixEdges(m, testEdgeIDs)

	cases := []struct {
		x, y int
		id   byte
		rot  int8
	}{
		{5, 5, 0x05, 0},  // isolated
		{21, 5, 0x05, 0}, // east-west bridge
		{30, 6, 0x05, 0}, // north-south bridge
		{20, 5, 0x06, 3}, // western protrusion
		{22, 5, 0x06, 1}, // eastern protrusion
		{30, 5, 0x06, 0}, // northern protrusion
		{30, 7, 0x06, 2}, // southern protrusion
	}
	for _, c := range cases {
		got := m.At(c.x, c.y)
		if got.ID != c.id || got.Rotation != c.rot {
			t.Errorf("tile (%d, %d) = id %#x rot %d, want id %#x rot %d", c.x, c.y, got.ID, got.Rotation, c.id, c.rot)
		}
	}
}

func TestFixEdgesWraps(t *testing.T) {
	m := grid.New()
	// a 3x3 block centred on the corner of the map
	for _, y := range []int{49, 0, 1} {
		for _, x := range []int{49, 0, 1} {
			m.At(x, y).ID = 0x05
		}
	}
	FixEdges(m, testEdgeIDs)

	if got := m.At(0, 0); got.ID != 0x05 {
		t.Errorf("wrapped centre = %#x, want base", got.ID)
	}
	if got := m.At(49, 49); got.ID != 0x07 || got.Rotation != 0 {
		t.Errorf("wrapped corner = id %#x rot %d, want outer corner rot 0", got.ID, got.Rotation)
	}
}

func allOf(id byte) *grid.Map {
	m := grid.New()
	for i := range m.Tiles {
		m.Tiles[i].ID = id
	}
	return m
}

func TestPlaceFailsWithoutCandidates(t *testing.T) {
	m := allOf(grid.Default)
	before := m.Clone()
	var placed []Point
	r := rng.FromSeed(1)

	ok := Place(m, Stamp{Cells: []StampCell{{grid.Trial, 0}}, Width: 1, Height: 1, Count: 1, SpawnOn: grid.Meadow}, &placed, r)
	if ok {
		t.Fatal("Place succeeded with no spawn tiles")
	}
	if !m.Equal(before) || len(placed) != 0 || len(m.Features) != 0 {
		t.Error("failed Place mutated its inputs")
	}
	if r.Seed() != 1 {
		t.Error("failed Place consumed random numbers")
	}
}

func TestPlaceNeedsEnoughCandidates(t *testing.T) {
	m := grid.New()
	m.At(4, 4).ID = grid.Meadow
	var placed []Point
	ok := Place(m, Stamp{Cells: []StampCell{{grid.HerbGarden, 0}}, Width: 1, Height: 1, Count: 2, SpawnOn: grid.Meadow}, &placed, rng.FromSeed(3))
	if ok {
		t.Error("Place succeeded with one candidate for two copies")
	}
}

func TestPlaceRecordsOnlyFirstCopy(t *testing.T) {
	m := allOf(grid.Meadow)
	var placed []Point
	ok := Place(m, Stamp{Cells: []StampCell{{grid.Elevator, 0}}, Width: 1, Height: 1, Count: 2, SpawnOn: grid.Meadow}, &placed, rng.FromSeed(3))
	if !ok {
		t.Fatal("Place failed on an open map")
	}
	if len(placed) != 1 {
		t.Errorf("placed has %d entries, want 1", len(placed))
	}
	if n := m.Count(grid.Elevator); n != 2 {
		t.Errorf("stamped %d elevators, want 2", n)
	}
	if len(m.Features) != 2 {
		t.Errorf("recorded %d features, want 2", len(m.Features))
	}
	if m.Features[0].X != placed[0].X || m.Features[0].Y != placed[0].Y {
		t.Error("first feature does not match the recorded exclusion point")
	}
}

func TestPlaceGolden(t *testing.T) {
	m := allOf(grid.Meadow)
	var placed []Point
	r := rng.FromSeed(0xCAFEBABE)

	// 2500 candidates, so 1250 pairs of draws
	if !Place(m, Stamp{Cells: []StampCell{{grid.HerbGarden, 0}}, Width: 1, Height: 1, Count: 1, SpawnOn: grid.Meadow}, &placed, r) {
		t.Fatal("Place failed on an open map")
	}
	if placed[0] != (Point{20, 22}) {
		t.Errorf("placed[0] = %+v, want {20 22}", placed[0])
	}
	if r.Seed() != 0x00B2DF96 {
		t.Errorf("Seed() = %#x, want 0xb2df96", r.Seed())
	}
	if m.At(20, 22).ID != grid.HerbGarden {
		t.Errorf("tile (20, 22) = %#x, want herb garden", m.At(20, 22).ID)
	}

	if !Place(m, Stamp{Cells: []StampCell{{grid.AntidoteGarden, 0}}, Width: 1, Height: 1, Count: 2, SpawnOn: grid.Meadow}, &placed, r) {
		t.Fatal("second Place failed")
	}
	if len(placed) != 2 || placed[1] != (Point{42, 12}) {
		t.Errorf("placed = %+v, want [{20 22} {42 12}]", placed)
	}
	if r.Seed() != 0x093593C2 {
		t.Errorf("Seed() = %#x, want 0x93593c2", r.Seed())
	}
	for _, p := range []Point{{42, 12}, {31, 25}} {
		if m.At(p.X, p.Y).ID != grid.AntidoteGarden {
			t.Errorf("tile %+v = %#x, want antidote garden", p, m.At(p.X, p.Y).ID)
		}
	}
}

func TestExclusionBox(t *testing.T) {
	m := allOf(grid.Meadow)
	placed := []Point{{20, 20}, {1, 1}}
	s := Stamp{Width: 1, Height: 1, Count: 1, SpawnOn: grid.Meadow}

	cands := candidates(m, s, placed)
	set := make(map[Point]bool, len(cands))
	for _, c := range cands {
		set[c] = true
	}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{25, 25}, false},
		{Point{15, 20}, false},
		{Point{26, 20}, true},
		{Point{20, 26}, true},
		{Point{47, 47}, false}, // wraps to within 4 of (1,1)
		{Point{46, 1}, false},
		{Point{45, 1}, true},
		{Point{1, 45}, true},
	}
	for _, tt := range tests {
		if set[tt.p] != tt.want {
			t.Errorf("candidate %v = %v, want %v", tt.p, set[tt.p], tt.want)
		}
	}
	if want := 2500 - 121 - 121; len(cands) != want {
		t.Errorf("got %d candidates, want %d", len(cands), want)
	}
}

func TestPlaceBlockAndRotation(t *testing.T) {
	m := grid.New()
	fillBlock(m, 48, 48, 3, 3, grid.Rocky)
	for i := range m.Tiles {
		m.Tiles[i].Rotation = 2
	}
	var placed []Point
	s := Stamp{
		Cells:   []StampCell{{grid.Ruins, 2}, {grid.RuinsBody, 3}, {grid.RuinsBody, 1}, {grid.RuinsBody, KeepRotation}},
		Width:   2,
		Height:  2,
		Count:   1,
		SpawnOn: grid.Rocky,
	}

	if !Place(m, s, &placed, rng.FromSeed(11)) {
		t.Fatal("Place failed with a 3x3 rocky block")
	}

	p := placed[0]
	if got := m.At(p.X, p.Y); got.ID != grid.Ruins || got.Rotation != 2 {
		t.Errorf("top-left = %+v, want ruins rot 2", *got)
	}
	if got := m.At(p.X+1, p.Y); got.ID != grid.RuinsBody || got.Rotation != 3 {
		t.Errorf("top-right = %+v, want body rot 3", *got)
	}
	if got := m.At(p.X+1, p.Y+1); got.ID != grid.RuinsBody || got.Rotation != 2 {
		t.Errorf("bottom-right = %+v, want body with kept rotation 2", *got)
	}
	if m.Count(grid.RuinsBody) != 3 {
		t.Errorf("stamped %d body tiles, want 3", m.Count(grid.RuinsBody))
	}
}

func TestWrapDistance(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 0, 0}, {0, 49, 1}, {49, 0, 1}, {10, 35, 25}, {10, 36, 24}, {3, 8, 5},
	}
	for _, tt := range tests {
		if got := wrapDistance(tt.a, tt.b, 50); got != tt.want {
			t.Errorf("wrapDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
