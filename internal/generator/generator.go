// Package generator rebuilds the overworld map the game derives from a
// seed code.
//
// Every attempt starts from a fresh copy of the rotated base map, grows
// the terrain, then places each landmark in a fixed order. A landmark that
// finds no room abandons the attempt and the next one continues from the
// current random state. Every third attempt the state is reset to the seed
// saved after rotation, plus one more each time.
package generator

import (
	"errors"
	"fmt"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
	"github.com/vhtoolkit/overworld/internal/rng"
	"github.com/vhtoolkit/overworld/internal/route"
	"github.com/vhtoolkit/overworld/internal/terrain"
)

// ErrAttemptsExhausted is returned when MaxAttempts is set and reached.
var ErrAttemptsExhausted = errors.New("generator: attempts exhausted")

// BaseMaps supplies the five base maps, already decoded. Implementations
// must return a copy the caller may modify.
type BaseMaps interface {
	BaseMap(id int) (*grid.Map, error)
}

// Result is a generated map and how it was made.
type Result struct {
	Map        *grid.Map
	Code       string
	Seed       uint32
	Difficulty grid.Difficulty
	BaseMap    int
	Rotation   int
	Attempts   int
	Route      route.Score
}

// Generator produces maps from seed codes. It holds no per-call state and
// may be shared between goroutines as long as Bases can.
type Generator struct {
	Bases      BaseMaps
	Thresholds Thresholds
	Policy     RoutePolicy

	// MaxAttempts stops a generation after that many attempts. Zero means
	// no limit, which is how the game behaves.
	MaxAttempts int
}

// New returns a generator with the default thresholds.
func New(bases BaseMaps) *Generator {
	return &Generator{
		Bases:      bases,
		Thresholds: DefaultThresholds(),
		Policy:     RejectRoute,
	}
}

// GenerateSeed generates the map for the code that seed encodes.
func (g *Generator) GenerateSeed(seed uint32, d grid.Difficulty, w Winnow) (*Result, error) {
	return g.Generate(rng.FromSeed(seed).Code(), d, w)
}

// Generate reproduces the map for code.
func (g *Generator) Generate(code string, d grid.Difficulty, w Winnow) (*Result, error) {
	r, err := rng.FromCode(code)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Code:       code,
		Seed:       r.Seed(),
		Difficulty: d,
		BaseMap:    int(r.Rand(5)) + 1,
	}
	if w.BaseMap && res.BaseMap != g.Thresholds.BaseMapID {
		return nil, fmt.Errorf("%w: %s uses base map %d", ErrBaseMapRejected, code, res.BaseMap)
	}

	base, err := g.Bases.BaseMap(res.BaseMap)
	if err != nil {
		return nil, fmt.Errorf("failed to load base map %d: %w", res.BaseMap, err)
	}
	res.Rotation = int(r.Rand(4))
	base.Rotate(res.Rotation)

	a := newAttempts(r)
	for {
		if g.MaxAttempts > 0 && a.n >= g.MaxAttempts {
			return nil, fmt.Errorf("%w: %s after %d", ErrAttemptsExhausted, code, a.n)
		}
		a.next()

		m, failed := g.attempt(base, d, r)
		if failed != "" {
			logger.Debug("Placement failed, retrying", "code", code, "attempt", a.n, "feature", failed)
			continue
		}

		placeStart(m, r)
		// the game draws once more here; keep the stream aligned
		r.Rand(0x10)

		score, err := route.Analyze(m)
		if err != nil {
			return nil, fmt.Errorf("failed to score %s: %w", code, err)
		}
		if err := g.Thresholds.check(w, score); err != nil {
			if g.Policy == RetryRoute {
				logger.Debug("Route rejected, retrying", "code", code, "attempt", a.n, "first", score.FirstLeg, "last", score.LastLeg)
				continue
			}
			return nil, fmt.Errorf("%s: %w", code, err)
		}

		res.Map = m
		res.Attempts = a.n
		res.Route = score
		return res, nil
	}
}

// attempt builds one candidate map from base. It returns the name of the
// feature that could not be placed, or "" on success.
func (g *Generator) attempt(base *grid.Map, d grid.Difficulty, r *rng.Random) (*grid.Map, string) {
	m := base.Clone()

	terrain.Fill(m, forestOuter, 600, r)
	terrain.FixEdges(m, forestInner)
	for _, reg := range regions {
		terrain.Fill(m, reg.ids, reg.count, r)
	}
	terrain.FillEmpty(m, grid.Default)

	var placed []terrain.Point
	for _, f := range features {
		if !terrain.Place(m, f.stamp(d, r), &placed, r) {
			return nil, f.name
		}
	}
	return m, ""
}

// placeStart marks the start tile: the n-th default tile in row-major
// order, n drawn uniformly.
func placeStart(m *grid.Map, r *rng.Random) {
	n := int(r.Rand(uint32(m.Count(grid.Default))))
	for i := range m.Tiles {
		if m.Tiles[i].ID != grid.Default {
			continue
		}
		if n == 0 {
			m.Tiles[i].ID = grid.Start
			return
		}
		n--
	}
}
