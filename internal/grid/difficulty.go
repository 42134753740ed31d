package grid

// Difficulty is the game's difficulty setting. Only the shop placement
// depends on it.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Pro
)

// String returns the name the game shows for the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case Pro:
		return "PRO"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a difficulty name. Unknown names fall back to Easy.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "Medium":
		return Medium
	case "Hard":
		return Hard
	case "PRO", "Pro":
		return Pro
	default:
		return Easy
	}
}

// ShopTile returns the tile stamped for the shop. Hard and PRO replace the
// shop with plain ground.
func (d Difficulty) ShopTile() byte {
	if d == Hard || d == Pro {
		return Default
	}
	return Shop
}
