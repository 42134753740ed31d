package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
	"github.com/vhtoolkit/overworld/internal/mapfile"
	"github.com/vhtoolkit/overworld/internal/route"
)

func runHeat(ctx context.Context, tk *toolkit, args []string) error {
	fs := flag.NewFlagSet("heat", flag.ExitOnError)
	base := fs.Int("base", 0, "Flood base map N (1-5)")
	file := fs.String("map", "", "Flood a saved map file instead")
	x := fs.Int("x", 0, "Column to flood from")
	y := fs.Int("y", 0, "Row to flood from")
	show := fs.Bool("print", false, "Print the heat map")
	fs.Parse(args)

	var m *grid.Map
	var name string
	var err error
	switch {
	case *file != "":
		m, err = mapfile.Load(*file)
		name = strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
	case *base != 0:
		m, err = tk.bases.BaseMap(*base)
		name = fmt.Sprintf("GR_BASE%d", *base)
	default:
		return fmt.Errorf("one of -base or -map is required")
	}
	if err != nil {
		return err
	}
	if *x < 0 || *x >= m.Width || *y < 0 || *y >= m.Height {
		return fmt.Errorf("start (%d, %d) is off the map", *x, *y)
	}

	h := route.Heat(m, *x, *y)
	path, err := mapfile.SaveHeat(tk.cfg.Paths.HeatDir, name, h)
	if err != nil {
		return err
	}
	logger.Info("Heat map saved", "path", path)

	if *show {
		return tk.renderer().Heat(h)
	}
	return nil
}
