// Package render draws overworld maps as text, one character per tile.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/route"
)

var (
	styleGround   = color.Style{color.FgDarkGray}
	styleMeadow   = color.Style{color.FgGreen}
	styleWater    = color.Style{color.FgBlue}
	styleBridge   = color.Style{color.FgBlack, color.BgBlue}
	styleTrees    = color.Style{color.FgRed}
	styleMountain = color.Style{color.FgMagenta}
	stylePeak     = color.Style{color.FgMagenta, color.BgDarkGray}
	styleRoad     = color.Style{color.FgRed, color.BgDarkGray}
	styleForest   = color.Style{color.FgGreen, color.BgDarkGray}
	styleLandmark = color.Style{color.FgLightYellow, color.BgDarkGray}
	styleRuins    = color.Style{color.BgDarkGray}
	styleCrystal  = color.Style{color.FgMagenta, color.BgDarkGray}
	styleCastle   = color.Style{color.FgLightYellow, color.BgBlue}
	stylePlain    = color.Style{}
)

type glyph struct {
	symbol string
	style  color.Style
}

// byRotation picks one of four symbols by the tile's rotation.
func byRotation(t grid.Tile, s color.Style, symbols [4]string) glyph {
	if t.Rotation < 0 || t.Rotation > 3 {
		return glyph{"?", s}
	}
	return glyph{symbols[t.Rotation], s}
}

func axisOf(t grid.Tile, s color.Style, ew, ns string) glyph {
	if t.Rotation == 0 || t.Rotation == 2 {
		return glyph{ew, s}
	}
	return glyph{ns, s}
}

var (
	edgeSymbols        = [4]string{"▄", "▌", "▀", "▐"}
	outerCornerSymbols = [4]string{"▗", "▖", "▘", "▝"}
	innerCornerSymbols = [4]string{"▟", "▙", "▛", "▜"}
	riverCornerSymbols = [4]string{"╔", "╗", "╝", "╚"}
	junctionSymbols    = [4]string{"╦", "╣", "╩", "╠"}
	springSymbols      = [4]string{"╨", "╞", "╥", "╡"}
	roadCornerSymbols  = [4]string{"┏", "┓", "┛", "┗"}
	roadCornerBSymbols = [4]string{"┛", "┗", "┏", "┓"}
	landmarkSymbols    = map[byte]string{
		grid.Graveyard: "G",
		grid.Sealed:    "S",
		grid.Mansion:   "M",
		grid.Ruins:     "R",
		grid.Trial:     "T",
		grid.Volcano:   "V",
		grid.Fairy:     "F",
		grid.Shop:      "$",
		grid.Start:     "@",
	}
	meadowSymbols = map[byte]string{
		grid.HerbGarden:     "h",
		grid.AntidoteGarden: "a",
		grid.PoisonGarden:   "p",
		grid.Elevator:       "e",
	}
)

func glyphFor(t grid.Tile) glyph {
	if s, ok := landmarkSymbols[t.ID]; ok {
		return glyph{s, styleLandmark}
	}
	if s, ok := meadowSymbols[t.ID]; ok {
		return glyph{s, styleMeadow}
	}

	switch id := t.ID; {
	case id == grid.Empty:
		return glyph{" ", stylePlain}
	case id >= 0x01 && id <= 0x04, id == 0x07, id == 0x19, id == 0x27, id == 0x2A, id == 0x30:
		return glyph{"█", styleGround}
	case id == grid.Rocky, id == 0x06, id == 0x08:
		return glyph{"█", stylePlain}
	case id == grid.Meadow:
		return glyph{"█", styleMeadow}
	case id == grid.Water, id == grid.Fountain:
		return glyph{"█", styleWater}
	case id == grid.LakeEdge:
		return byRotation(t, styleWater, edgeSymbols)
	case id == grid.LakeOuterCorner:
		return byRotation(t, styleWater, outerCornerSymbols)
	case id == grid.LakeInnerCorner:
		return byRotation(t, styleWater, innerCornerSymbols)
	case id == grid.RiverMouth, id == grid.River:
		return axisOf(t, styleWater, "═", "║")
	case id == grid.RiverCorner:
		return byRotation(t, styleWater, riverCornerSymbols)
	case id == grid.RiverJunction:
		return byRotation(t, styleWater, junctionSymbols)
	case id == grid.Spring:
		return byRotation(t, styleWater, springSymbols)
	case id == grid.Bridge, id == grid.RiverBridge:
		return axisOf(t, styleBridge, "┃", "━")
	case id == 0x17, id == 0x18, id == 0x1A:
		return glyph{"█", styleTrees}
	case id == grid.MountainEdge:
		return byRotation(t, styleMountain, outerCornerSymbols)
	case id == 0x1C, id == 0x1D:
		return byRotation(t, styleMountain, innerCornerSymbols)
	case id >= 0x1E && id <= 0x20:
		return glyph{"▲", stylePeak}
	case id == 0x21, id == 0x24:
		return axisOf(t, styleRoad, "━", "┃")
	case id == 0x22:
		return byRotation(t, styleRoad, roadCornerSymbols)
	case id == 0x23:
		return byRotation(t, styleRoad, roadCornerBSymbols)
	case id >= grid.Forest && id <= 0x29, id == 0x2B, id == 0x2F:
		return glyph{"♣", styleForest}
	case id == grid.RuinsBody:
		return glyph{"R", styleRuins}
	case id == 0x37:
		return glyph{"T", styleCrystal}
	case id == grid.Castle:
		return glyph{"C", styleCastle}
	}
	return glyph{"?", stylePlain}
}

// Renderer writes maps to W.
type Renderer struct {
	W     io.Writer
	Color bool
}

// NewRenderer writes to w, with colour when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Color: IsTerminal(w)}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) paint(g glyph) string {
	if !r.Color || len(g.style) == 0 {
		return g.symbol
	}
	return g.style.Sprint(g.symbol)
}

// Symbol returns the character drawn for t.
func Symbol(t grid.Tile) string {
	return glyphFor(t).symbol
}

// Map draws m, one row per line.
func (r *Renderer) Map(m *grid.Map) error {
	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteString(r.paint(glyphFor(m.Tiles[x+y*m.Width])))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.W, b.String())
	return err
}

var legendRows = [][]glyph{
	{{"G - Graveyard", styleLandmark}, {"M - Mansion", styleLandmark}, {"T - Trial", styleLandmark}},
	{{"R - Ruins", styleLandmark}, {"V - Volcano", styleLandmark}, {"F - Fairy", styleLandmark}},
	{{"C - Castle Tablet", styleLandmark}, {"@ - Start", styleLandmark}, {"$ - Shop", styleLandmark}},
	{{"S - Sealed", styleLandmark}, {"T - Transport Crystals", styleCrystal}},
}

// Legend explains the landmark symbols.
func (r *Renderer) Legend() error {
	var b strings.Builder
	b.WriteString("Legend\n")
	for _, row := range legendRows {
		cells := make([]string, len(row))
		for i, g := range row {
			cells[i] = r.paint(g)
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.W, b.String())
	return err
}

// heatDigits encodes hop counts up to 35; larger counts print as '+'.
const heatDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Heat draws a heat map with one base-36 digit per cell. Unreached cells
// print as '#', the origin as '@'.
func (r *Renderer) Heat(h *route.HeatMap) error {
	var b strings.Builder
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			v := h.At(x, y)
			switch {
			case x == h.X0 && y == h.Y0:
				b.WriteString(r.paint(glyph{"@", styleLandmark}))
			case v == route.Unreached:
				b.WriteString(r.paint(glyph{"#", stylePeak}))
			case int(v) < len(heatDigits):
				b.WriteByte(heatDigits[v])
			default:
				b.WriteByte('+')
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.W, b.String())
	return err
}

// Score prints a route report line.
func (r *Renderer) Score(code string, s route.Score) error {
	_, err := fmt.Fprintf(r.W, "%s  first leg %d  last leg %d  total %d\n", code, s.FirstLeg, s.LastLeg, s.Total())
	return err
}
