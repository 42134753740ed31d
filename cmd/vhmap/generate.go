package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/vhtoolkit/overworld/internal/generator"
	"github.com/vhtoolkit/overworld/internal/logger"
	"github.com/vhtoolkit/overworld/internal/mapfile"
	"github.com/vhtoolkit/overworld/internal/rng"
	"github.com/vhtoolkit/overworld/internal/route"
)

func runGenerate(ctx context.Context, tk *toolkit, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	gf := addGenFlags(fs)
	seed := fs.Int64("seed", -1, "Generate the code for this numeric seed instead")
	showLegend := fs.Bool("legend", true, "Show legend")
	save := fs.Bool("save", false, "Save each map to the save directory")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: vhmap generate [flags] CODE...\n\n")
		fmt.Fprintf(fs.Output(), "Codes are ten symbols; shorter codes are padded with spaces.\n")
		fmt.Fprintf(fs.Output(), "♂ is Alt-11, ♀ is Alt-12.\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	codes := fs.Args()
	if *seed >= 0 {
		codes = append(codes, rng.FromSeed(uint32(*seed)).Code())
	}
	if len(codes) == 0 {
		fs.Usage()
		return fmt.Errorf("no seed code given")
	}

	g := tk.generator()
	r := tk.renderer()
	for _, code := range codes {
		res, err := g.Generate(rng.PadCode(code), gf.Difficulty(), gf.Winnow())
		if err != nil {
			return err
		}
		if err := printResult(tk, res); err != nil {
			return err
		}
		if *save {
			path := mapfile.CodePath(tk.cfg.Paths.SaveDir, res.Code)
			if err := mapfile.Save(path, res.Map); err != nil {
				return err
			}
			logger.Info("Map saved", "code", res.Code, "path", path)
		}
	}

	if *showLegend {
		return r.Legend()
	}
	return nil
}

func printResult(tk *toolkit, res *generator.Result) error {
	r := tk.renderer()
	fmt.Fprintf(tk.out, "%q seed %d  %s  base map %d  rotation %d  attempts %d\n",
		res.Code, res.Seed, res.Difficulty, res.BaseMap, res.Rotation, res.Attempts)
	if err := r.Map(res.Map); err != nil {
		return err
	}
	if err := r.Score(res.Code, res.Route); err != nil {
		return err
	}
	if d, err := route.VolcanoSealedCastle(res.Map, res.Rotation); err == nil {
		fmt.Fprintf(tk.out, "volcano-sealed-castle %d\n", d)
	}
	fmt.Fprintln(tk.out, "--------------------------------------------------")
	return nil
}
