package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/vhtoolkit/overworld/internal/mapfile"
)

func runBaseMaps(ctx context.Context, tk *toolkit, args []string) error {
	fs := flag.NewFlagSet("basemaps", flag.ExitOnError)
	rotate := fs.Bool("rotate", false, "Also print each base map in its three other rotations")
	only := fs.Int("id", 0, "Print only this base map (1-5)")
	fs.Parse(args)

	if err := tk.bases.Preload(); err != nil {
		return err
	}

	r := tk.renderer()
	for id := 1; id <= mapfile.BaseMapCount; id++ {
		if *only != 0 && id != *only {
			continue
		}
		turns := 1
		if *rotate {
			turns = 4
		}
		for rot := 0; rot < turns; rot++ {
			m, err := tk.bases.BaseMap(id)
			if err != nil {
				return err
			}
			m.Rotate(rot)
			fmt.Fprintf(tk.out, "Base map %d rotation %d\n", id, rot)
			if err := r.Map(m); err != nil {
				return err
			}
			fmt.Fprintln(tk.out)
		}
	}
	return r.Legend()
}
