package route

import (
	"errors"
	"testing"

	"github.com/vhtoolkit/overworld/internal/grid"
)

func at(x, y int) grid.Feature {
	return grid.Feature{X: x, Y: y}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b grid.Feature
		want int
	}{
		{at(0, 0), at(0, 0), 0},
		{at(0, 0), at(3, 4), 7},
		{at(0, 0), at(49, 0), 1},
		{at(0, 0), at(25, 25), 50},
		{at(0, 0), at(26, 26), 48},
		{at(10, 48), at(12, 1), 5},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Distance(tt.b, tt.a); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestBestFirstLegPlainMinimum(t *testing.T) {
	// all on one row: start 0, elevator 2, fairy 4, ruins 6, volcano 8
	got := BestFirstLeg(at(0, 0), at(2, 0), at(4, 0), at(6, 0), at(8, 0))
	if got != 8 {
		t.Errorf("BestFirstLeg = %d, want 8", got)
	}
}

func TestBestFirstLegKeepsThirdOrder(t *testing.T) {
	// ruins first then fairy then elevator is the true best (8), but the
	// later orders only ever adopt the third order's length
	start := at(0, 0)
	r := at(2, 0)
	f := at(4, 0)
	e := at(6, 0)
	v := at(8, 0)

	opt3 := Distance(start, f) + Distance(e, f) + Distance(e, r) + Distance(r, v)
	got := BestFirstLeg(start, e, f, r, v)
	if got != opt3 {
		t.Errorf("BestFirstLeg = %d, want %d", got, opt3)
	}
	if got == 8 {
		t.Error("BestFirstLeg found the true minimum")
	}
}

func TestBestLastLeg(t *testing.T) {
	if got := BestLastLeg(at(0, 0), at(0, 3), at(48, 3)); got != 5 {
		t.Errorf("BestLastLeg = %d, want 5", got)
	}
}

func landmarkMap() *grid.Map {
	m := grid.New()
	put := func(x, y int, id byte) { m.At(x, y).ID = id }
	put(0, 0, grid.Start)
	put(2, 0, grid.Elevator)
	put(4, 0, grid.Fairy)
	put(6, 0, grid.Ruins)
	put(8, 0, grid.Volcano)
	put(8, 3, grid.Sealed)
	put(8, 5, grid.Castle)
	return m
}

func TestAnalyze(t *testing.T) {
	s, err := Analyze(landmarkMap())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if s.FirstLeg != 8 || s.LastLeg != 5 || s.Total() != 13 {
		t.Errorf("Analyze = %+v (total %d), want {8 5} (total 13)", s, s.Total())
	}
}

func TestAnalyzeLaterElevatorWins(t *testing.T) {
	m := landmarkMap()
	m.At(30, 30).ID = grid.Elevator

	l, err := Locate(m)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if l.Elevator.X != 30 || l.Elevator.Y != 30 {
		t.Errorf("elevator at (%d, %d), want (30, 30)", l.Elevator.X, l.Elevator.Y)
	}
}

func TestAnalyzeMissingLandmark(t *testing.T) {
	m := landmarkMap()
	m.At(8, 3).ID = grid.Default

	if _, err := Analyze(m); !errors.Is(err, ErrMissingLandmark) {
		t.Errorf("Analyze without sealed dungeon: err = %v, want ErrMissingLandmark", err)
	}
}

func TestVolcanoSealedCastle(t *testing.T) {
	m := grid.New()
	m.Features = []grid.Feature{
		{Tile: grid.Tile{ID: grid.Ruins}, X: 40, Y: 40},
		{Tile: grid.Tile{ID: grid.Volcano}, X: 10, Y: 10},
		{Tile: grid.Tile{ID: grid.Sealed}, X: 12, Y: 13},
		{Tile: grid.Tile{ID: grid.Shop}, X: 1, Y: 1},
	}

	tests := []struct {
		rotation int
		want     int
	}{
		{0, 5 + 3},
		{1, 5 + 3 + 23},
		{2, 5 + 24 + 21},
		{3, 5 + 22 + 0},
		{4, 255},
	}
	for _, tt := range tests {
		got, err := VolcanoSealedCastle(m, tt.rotation)
		if err != nil {
			t.Fatalf("VolcanoSealedCastle(%d): %v", tt.rotation, err)
		}
		if got != tt.want {
			t.Errorf("VolcanoSealedCastle(%d) = %d, want %d", tt.rotation, got, tt.want)
		}
	}

	m.Features = m.Features[:2]
	if _, err := VolcanoSealedCastle(m, 0); !errors.Is(err, ErrMissingLandmark) {
		t.Errorf("err = %v, want ErrMissingLandmark", err)
	}
}

func TestHeatOpenMap(t *testing.T) {
	m := grid.New()
	for i := range m.Tiles {
		m.Tiles[i].ID = grid.Default
	}
	h := Heat(m, 10, 10)

	tests := []struct {
		x, y int
		want uint8
	}{
		{10, 10, 0},
		{11, 11, 1},
		{13, 10, 3},
		{15, 17, 7},
		{35, 10, 25},
		{36, 10, 24}, // around the seam
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := h.At(tt.x, tt.y); got != tt.want {
			t.Errorf("heat at (%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHeatWall(t *testing.T) {
	m := grid.New()
	for i := range m.Tiles {
		m.Tiles[i].ID = grid.Default
	}
	// a full-height river column at x = 12
	for y := 0; y < m.Height; y++ {
		m.At(12, y).ID = grid.River
	}
	h := Heat(m, 10, 10)

	if got := h.At(12, 10); got != Unreached {
		t.Errorf("river heat = %d, want Unreached", got)
	}
	// the only way to x = 13 is around the map
	if got := h.At(13, 10); got != 47 {
		t.Errorf("heat past the river = %d, want 47", got)
	}
}

func TestHeatWrapsOrigin(t *testing.T) {
	m := grid.New()
	for i := range m.Tiles {
		m.Tiles[i].ID = grid.Default
	}
	m.At(48, 1).ID = grid.Water

	got := Heat(m, -1, 50)
	want := Heat(m, 49, 0)
	if got.X0 != 49 || got.Y0 != 0 {
		t.Errorf("origin = (%d, %d), want (49, 0)", got.X0, got.Y0)
	}
	for i := range want.Heat {
		if got.Heat[i] != want.Heat[i] {
			t.Fatalf("heat[%d] = %d, want %d", i, got.Heat[i], want.Heat[i])
		}
	}
}

func TestEnterable(t *testing.T) {
	tests := []struct {
		name string
		tile grid.Tile
		from Dir
		want bool
	}{
		{"water", grid.Tile{ID: grid.Water}, N, false},
		{"lake edge from north", grid.Tile{ID: grid.LakeEdge}, N, true},
		{"lake edge from south", grid.Tile{ID: grid.LakeEdge}, S, false},
		{"lake edge rot 1 from west", grid.Tile{ID: grid.LakeEdge, Rotation: 1}, W, false},
		{"outer corner from south-east", grid.Tile{ID: grid.LakeOuterCorner}, SE, false},
		{"outer corner from south", grid.Tile{ID: grid.LakeOuterCorner}, S, true},
		{"inside corner permitted", grid.Tile{ID: grid.LakeInnerCorner}, NE, true},
		{"inside corner refused", grid.Tile{ID: grid.LakeInnerCorner}, SW, false},
		{"river corner rot 2 from north", grid.Tile{ID: grid.RiverCorner, Rotation: 2}, N, false},
		{"river corner rot 2 from south", grid.Tile{ID: grid.RiverCorner, Rotation: 2}, S, true},
		{"spring rot 1 from east", grid.Tile{ID: grid.Spring, Rotation: 1}, E, false},
		{"bridge across", grid.Tile{ID: grid.Bridge}, N, true},
		{"bridge from the side", grid.Tile{ID: grid.Bridge}, E, false},
		{"turned bridge from the side", grid.Tile{ID: grid.RiverBridge, Rotation: 1}, E, true},
		{"mountain edge rot 3 from north-east", grid.Tile{ID: grid.MountainEdge, Rotation: 3}, NE, false},
		{"mountain interior", grid.Tile{ID: 0x1E}, S, false},
		{"tree cluster", grid.Tile{ID: 0x18}, S, false},
		{"open trees", grid.Tile{ID: 0x19}, S, true},
		{"fountain", grid.Tile{ID: grid.Fountain}, W, true},
		{"bad rotation", grid.Tile{ID: grid.LakeEdge, Rotation: 7}, N, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enterable(tt.tile, tt.from); got != tt.want {
				t.Errorf("enterable(%+v, %d) = %v, want %v", tt.tile, tt.from, got, tt.want)
			}
		})
	}
}
