package generator

import (
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/rng"
	"github.com/vhtoolkit/overworld/internal/terrain"
)

// region is one terrain fill step.
type region struct {
	name  string
	ids   []byte
	count int
}

// Forest is filled with its outer edge ids, then its remaining core is
// edged again with the inner edge ids.
var (
	forestOuter = []byte{grid.Forest, 0x29, 0x2A, 0x2B}
	forestInner = []byte{grid.Forest, 0x26, 0x27, 0x28}
)

var regions = []region{
	{"meadow", []byte{grid.Meadow}, 400},
	{"rocky", []byte{grid.Rocky, 0x06, 0x07, 0x08}, 200},
	{"sparse trees", []byte{0x17, 0x18, 0x19, 0x1A}, 300},
}

// feature is one placement step. A random rotation, when used, is drawn
// before the placement runs.
type feature struct {
	name        string
	cells       []terrain.StampCell
	width       int
	height      int
	count       int
	spawnOn     byte
	randomTurn  bool
	dependsShop bool
}

func single(name string, id byte, count int, spawnOn byte) feature {
	return feature{name: name, cells: []terrain.StampCell{{ID: id}}, width: 1, height: 1, count: count, spawnOn: spawnOn}
}

func turned(name string, id byte, spawnOn byte) feature {
	f := single(name, id, 1, spawnOn)
	f.randomTurn = true
	return f
}

var features = []feature{
	{
		name: "ruins",
		cells: []terrain.StampCell{
			{ID: grid.Ruins, Rotation: 2},
			{ID: grid.RuinsBody, Rotation: 3},
			{ID: grid.RuinsBody, Rotation: 1},
			{ID: grid.RuinsBody, Rotation: 0},
		},
		width:   2,
		height:  2,
		count:   1,
		spawnOn: grid.Rocky,
	},
	turned("mansion", grid.Mansion, grid.Forest),
	single("herb garden", grid.HerbGarden, 2, grid.Meadow),
	single("antidote garden", grid.AntidoteGarden, 2, grid.Meadow),
	single("poison garden", grid.PoisonGarden, 2, grid.Meadow),
	single("elevator", grid.Elevator, 2, grid.Meadow),
	single("fairy forest", grid.Fairy, 1, grid.Default),
	single("trial dungeon", grid.Trial, 1, grid.Meadow),
	turned("graveyard", grid.Graveyard, grid.Forest),
	turned("volcano", grid.Volcano, grid.Rocky),
	{
		name:    "sealed dungeon",
		cells:   []terrain.StampCell{{ID: grid.Sealed, Rotation: terrain.KeepRotation}},
		width:   1,
		height:  1,
		count:   1,
		spawnOn: grid.MountainEdge,
	},
	{
		name:        "shop",
		cells:       []terrain.StampCell{{ID: grid.Shop}},
		width:       1,
		height:      1,
		count:       1,
		spawnOn:     grid.Default,
		randomTurn:  true,
		dependsShop: true,
	},
}

// stamp builds the placement for f, drawing its rotation from r if needed.
func (f feature) stamp(d grid.Difficulty, r *rng.Random) terrain.Stamp {
	cells := f.cells
	if f.randomTurn || f.dependsShop {
		cells = append([]terrain.StampCell(nil), f.cells...)
	}
	if f.randomTurn {
		cells[0].Rotation = int8(r.RandByte() & 3)
	}
	if f.dependsShop {
		cells[0].ID = d.ShopTile()
	}
	return terrain.Stamp{
		Name:    f.name,
		Cells:   cells,
		Width:   f.width,
		Height:  f.height,
		Count:   f.count,
		SpawnOn: f.spawnOn,
	}
}
