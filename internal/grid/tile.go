package grid

// Tile ids with meaning to generation or route analysis.
const (
	Empty           byte = 0x00
	Default         byte = 0x01 // plain walkable ground
	Rocky           byte = 0x05
	Meadow          byte = 0x09
	HerbGarden      byte = 0x0A
	AntidoteGarden  byte = 0x0B
	PoisonGarden    byte = 0x0C
	Water           byte = 0x0D
	LakeEdge        byte = 0x0E
	LakeOuterCorner byte = 0x0F
	LakeInnerCorner byte = 0x10
	RiverMouth      byte = 0x11
	Castle          byte = 0x12
	River           byte = 0x13
	RiverCorner     byte = 0x14
	RiverJunction   byte = 0x15
	Bridge          byte = 0x16
	MountainEdge    byte = 0x1B
	Forest          byte = 0x25
	Graveyard       byte = 0x2C
	Sealed          byte = 0x2D
	Mansion         byte = 0x2E
	RiverBridge     byte = 0x31
	RuinsBody       byte = 0x32
	Trial           byte = 0x33
	Fountain        byte = 0x34
	Volcano         byte = 0x35
	Fairy           byte = 0x36
	Elevator        byte = 0x38
	Ruins           byte = 0x39
	Spring          byte = 0x3A
	Shop            byte = 0x3B
	Start           byte = 0xFF
)

// Tile is one cell of an overworld map. Height is carried through
// generation untouched.
type Tile struct {
	ID       byte
	Rotation int8
	Height   int8
}

// Landmarks lists the ids that a placed feature's representative tile can
// carry.
var Landmarks = []byte{
	Ruins, Mansion, HerbGarden, AntidoteGarden, PoisonGarden, Elevator,
	Fairy, Trial, Graveyard, Volcano, Sealed, Shop, Default,
}

// IsLandmark reports whether id is one of the placed feature ids.
func IsLandmark(id byte) bool {
	for _, l := range Landmarks {
		if l == id {
			return true
		}
	}
	return false
}

// Feature is a placed landmark's representative tile and its position.
type Feature struct {
	Tile Tile
	X, Y int
}
