// Package route scores how quickly a generated overworld can be finished.
//
// Two legs are scored with the toroidal Manhattan distance between
// landmarks: the first leg runs from the start tile through the elevator,
// the fairy forest and the ruins (in the best of a fixed set of orders) to
// the volcano; the last leg runs from the volcano through the sealed
// dungeon to the castle. Heat gives the passability-aware hop counts used
// for inspecting individual maps.
package route

import (
	"errors"
	"fmt"

	"github.com/vhtoolkit/overworld/internal/grid"
)

// ErrMissingLandmark is returned when a map lacks a landmark needed for
// scoring, which only happens for maps that did not come out of a
// successful generation.
var ErrMissingLandmark = errors.New("route: landmark missing")

// Score is a map's route quality. Lower is better.
type Score struct {
	FirstLeg int
	LastLeg  int
}

// Total is the sum of both legs.
func (s Score) Total() int {
	return s.FirstLeg + s.LastLeg
}

// Landmarks holds the position of each scored landmark. When a landmark
// appears more than once the last one in row-major order wins.
type Landmarks struct {
	Start    grid.Feature
	Elevator grid.Feature
	Fairy    grid.Feature
	Ruins    grid.Feature
	Volcano  grid.Feature
	Sealed   grid.Feature
	Castle   grid.Feature

	// Not scored, located for reports.
	Graveyard grid.Feature
	Mansion   grid.Feature
	Trial     grid.Feature
	Shop      grid.Feature
}

// Locate scans m for its landmarks.
func Locate(m *grid.Map) (Landmarks, error) {
	var l Landmarks
	slots := map[byte]*grid.Feature{
		grid.Start:     &l.Start,
		grid.Elevator:  &l.Elevator,
		grid.Fairy:     &l.Fairy,
		grid.Ruins:     &l.Ruins,
		grid.Volcano:   &l.Volcano,
		grid.Sealed:    &l.Sealed,
		grid.Castle:    &l.Castle,
		grid.Graveyard: &l.Graveyard,
		grid.Mansion:   &l.Mansion,
		grid.Trial:     &l.Trial,
		grid.Shop:      &l.Shop,
	}
	found := make(map[byte]bool, len(slots))

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.Tiles[x+y*m.Width]
			if slot, ok := slots[t.ID]; ok {
				*slot = grid.Feature{Tile: t, X: x, Y: y}
				found[t.ID] = true
			}
		}
	}

	required := []struct {
		id   byte
		name string
	}{
		{grid.Start, "start"},
		{grid.Elevator, "elevator"},
		{grid.Fairy, "fairy forest"},
		{grid.Ruins, "ruins"},
		{grid.Volcano, "volcano"},
		{grid.Sealed, "sealed dungeon"},
		{grid.Castle, "castle"},
	}
	for _, r := range required {
		if !found[r.id] {
			return l, fmt.Errorf("%w: %s", ErrMissingLandmark, r.name)
		}
	}

	return l, nil
}

// Analyze locates the landmarks on m and scores both legs.
func Analyze(m *grid.Map) (Score, error) {
	l, err := Locate(m)
	if err != nil {
		return Score{}, err
	}
	return Score{
		FirstLeg: BestFirstLeg(l.Start, l.Elevator, l.Fairy, l.Ruins, l.Volcano),
		LastLeg:  BestLastLeg(l.Volcano, l.Sealed, l.Castle),
	}, nil
}

// Distance is the Manhattan distance between a and b on the wrapping map.
// It ignores terrain.
func Distance(a, b grid.Feature) int {
	return axis(a.X, b.X, grid.Width) + axis(a.Y, b.Y, grid.Height)
}

func axis(a, b, n int) int {
	d := b - a
	if d < 0 {
		d = -d
	}
	if d > n/2 {
		d = n - d
	}
	return d
}

// BestFirstLeg is the shortest of the visiting orders for elevator (e),
// fairy (f) and ruins (r) between start and volcano. The last three orders
// are compared but never adopted: when one of them beats the running best
// the third order's length is taken instead. Scores depend on this.
func BestFirstLeg(start, e, f, r, volcano grid.Feature) int {
	startE := Distance(start, e)
	startF := Distance(start, f)
	startR := Distance(start, r)
	eV := Distance(e, volcano)
	rV := Distance(r, volcano)
	fV := Distance(f, volcano)
	eF := Distance(e, f)
	eR := Distance(e, r)
	fR := Distance(f, r)

	best := startE + eF + fR + rV // e f r
	if o := startE + eR + fR + fV; o < best {
		best = o // e r f
	}
	opt3 := startF + eF + eR + rV // f e r
	if opt3 < best {
		best = opt3
	}
	if o := startF + fR + eR + eV; o < best { // f r e
		best = opt3
	}
	if o := startR + eR + eF + fV; o < best { // r e f
		best = opt3
	}
	if o := startR + fR + eF + eV; o < best { // r f e
		best = opt3
	}
	return best
}

// BestLastLeg is volcano to sealed dungeon to castle.
func BestLastLeg(volcano, sealed, castle grid.Feature) int {
	return Distance(volcano, sealed) + Distance(sealed, castle)
}

// castleDoors are the fixed approach points to the castle for each base
// map rotation.
var castleDoors = [4]struct{ x, y int }{
	{13, 15},
	{15, 36},
	{36, 34},
	{34, 13},
}

// VolcanoSealedCastle estimates the last leg from the placed volcano and
// sealed dungeon to the castle door of a base map turned by rotation,
// without wrapping. It uses the placement record in m.Features rather than
// scanning the tiles, so it works on maps that still lack a start tile.
// Rotations outside 0..3 score 255.
func VolcanoSealedCastle(m *grid.Map, rotation int) (int, error) {
	var volcano, sealed *grid.Feature
	for i := range m.Features {
		switch m.Features[i].Tile.ID {
		case grid.Volcano:
			volcano = &m.Features[i]
		case grid.Sealed:
			sealed = &m.Features[i]
		}
	}
	if volcano == nil {
		return 0, fmt.Errorf("%w: volcano", ErrMissingLandmark)
	}
	if sealed == nil {
		return 0, fmt.Errorf("%w: sealed dungeon", ErrMissingLandmark)
	}
	if rotation < 0 || rotation > 3 {
		return 255, nil
	}

	door := castleDoors[rotation]
	d := abs(sealed.X-volcano.X) + abs(sealed.Y-volcano.Y)
	d += abs(door.x-sealed.X) + abs(door.y-sealed.Y)
	return d, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
