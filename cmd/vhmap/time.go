package main

import (
	"context"
	"flag"

	"github.com/vhtoolkit/overworld/internal/search"
)

func runTime(ctx context.Context, tk *toolkit, args []string) error {
	fs := flag.NewFlagSet("time", flag.ExitOnError)
	gf := addGenFlags(fs)
	count := fs.Uint("count", 1000000, "Number of seeds to generate")
	workers := fs.Int("workers", tk.cfg.Search.Workers, "Number of worker goroutines")
	fs.Parse(args)

	if err := checkSeedRange(0, uint64(*count)); err != nil {
		return err
	}
	if err := tk.bases.Preload(); err != nil {
		return err
	}

	req := search.Request{
		Count:      uint32(*count),
		Difficulty: gf.Difficulty(),
		Winnow:     gf.Winnow(),
	}
	engine := &search.Engine{Generator: tk.generator(), Workers: *workers}
	report, err := engine.Run(ctx, req)
	printReport(tk, req, report)
	return err
}
