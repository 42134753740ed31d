package mapfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/route"
)

// EncodeHeat packs a heat map into the map file container. Each cell's
// three bytes hold its hop count as right-aligned decimal text, so the
// values read directly in a hex editor.
func EncodeHeat(h *route.HeatMap) []byte {
	data := newContainer()
	for i, v := range h.Heat {
		copy(data[TileOffset+i*3:TileOffset+i*3+3], fmt.Sprintf("%3d", v))
	}
	return data
}

// DecodeHeat reads back a file written by EncodeHeat. The origin is not
// stored in the file and is left zero.
func DecodeHeat(data []byte) (*route.HeatMap, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	h := &route.HeatMap{Width: grid.Width, Height: grid.Height, Heat: make([]uint8, grid.Size)}
	for i := range h.Heat {
		cell := data[TileOffset+i*3 : TileOffset+i*3+3]
		v, err := strconv.Atoi(strings.TrimSpace(string(cell)))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: heat cell %d: %q", ErrFormat, i, cell)
		}
		h.Heat[i] = uint8(v)
	}
	return h, nil
}

// HeatPath is the file a heat map for name is saved under.
func HeatPath(dir, name string, h *route.HeatMap) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%d-%d.HEAT", name, h.X0, h.Y0))
}

// SaveHeat writes h into dir and returns the file name used.
func SaveHeat(dir, name string, h *route.HeatMap) (string, error) {
	path := HeatPath(dir, name, h)
	if err := write(path, EncodeHeat(h)); err != nil {
		return "", err
	}
	return path, nil
}
