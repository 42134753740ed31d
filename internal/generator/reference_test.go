package generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vhtoolkit/overworld/internal/generator"
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/mapfile"
)

// The game's base maps and RAM dumps of real overworlds are not
// redistributable. Drop them into testdata/ to run these comparisons:
//
//	testdata/basemaps/GR_BASE1.BIN .. GR_BASE5.BIN
//	testdata/FNMCNTLGHF.bin (and the other codes below)
func TestMatchesGameDumps(t *testing.T) {
	baseDir := filepath.Join("testdata", "basemaps")
	if _, err := os.Stat(mapfile.BaseMapPath(baseDir, 1)); err != nil {
		t.Skip("game base maps not present in testdata/basemaps")
	}

	g := generator.New(mapfile.NewCache(mapfile.DirProvider{Dir: baseDir}))

	tests := []struct {
		code string
		note string
	}{
		{"FNMCNTLGHF", "plain seed"},
		{"GBBBTSMMBB", "sealed dungeon fails to place"},
		{"BBBBNDTLBB", "volcano fails to place"},
		{"QBBDGRNQBB", "seven attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			dump := filepath.Join("testdata", tt.code+".bin")
			if _, err := os.Stat(dump); err != nil {
				t.Skipf("no dump for %s", tt.code)
			}
			want, err := mapfile.LoadMednafen(dump)
			if err != nil {
				t.Fatalf("LoadMednafen: %v", err)
			}

			res, err := g.Generate(tt.code, grid.Easy, generator.Winnow{})
			if err != nil {
				t.Fatalf("Generate(%q): %v", tt.code, err)
			}

			// the game keeps no start marker in its tile array
			got := res.Map.Clone()
			x, y, ok := got.Find(grid.Start)
			if !ok {
				t.Fatal("generated map has no start tile")
			}
			got.At(x, y).ID = grid.Default

			if !sameTiles(got, want) {
				t.Errorf("%s (%s): generated map differs from the game's", tt.code, tt.note)
			}
		})
	}
}

func sameTiles(a, b *grid.Map) bool {
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			return false
		}
	}
	return true
}
