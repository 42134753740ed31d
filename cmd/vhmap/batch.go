package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/vhtoolkit/overworld/internal/catalog"
	"github.com/vhtoolkit/overworld/internal/logger"
	"github.com/vhtoolkit/overworld/internal/mapfile"
	"github.com/vhtoolkit/overworld/internal/search"
)

func runBatch(ctx context.Context, tk *toolkit, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	gf := addGenFlags(fs)
	start := fs.Uint("start", 0, "First seed of the range")
	count := fs.Uint("count", 1000000, "Number of seeds to generate")
	save := fs.Bool("save", false, "Save accepted maps (9K per file)")
	useCatalog := fs.Bool("catalog", tk.cfg.Catalog.Enabled, "Record accepted maps in the seed catalog")
	workers := fs.Int("workers", tk.cfg.Search.Workers, "Number of worker goroutines")
	fs.Parse(args)

	if err := checkSeedRange(uint64(*start), uint64(*count)); err != nil {
		return err
	}

	req := search.Request{
		Start:      uint32(*start),
		Count:      uint32(*count),
		Difficulty: gf.Difficulty(),
		Winnow:     gf.Winnow(),
		Save:       *save || *useCatalog,
	}

	var sinks search.MultiSink
	if *save {
		sinks = append(sinks, mapfile.DirSink{Dir: tk.cfg.Paths.SaveDir})
	}
	if *useCatalog {
		cat, err := catalog.Open(tk.cfg.Catalog.Config)
		if err != nil {
			return err
		}
		defer cat.Close()
		sinks = append(sinks, cat)
	}

	if err := tk.bases.Preload(); err != nil {
		return err
	}

	engine := &search.Engine{
		Generator: tk.generator(),
		Workers:   *workers,
		Sink:      sinks,
	}
	report, err := engine.Run(ctx, req)
	printReport(tk, req, report)
	if errors.Is(err, context.Canceled) {
		logger.Warning("Sweep interrupted", "processed", report.Processed)
		return nil
	}
	return err
}

// checkSeedRange rejects ranges that do not fit the 32-bit seed space.
func checkSeedRange(start, count uint64) error {
	switch {
	case start > math.MaxUint32:
		return fmt.Errorf("start %d is past the last seed", start)
	case count > math.MaxUint32:
		return fmt.Errorf("count %d is larger than the seed space", count)
	case start+count > 1<<32:
		return fmt.Errorf("range %d+%d runs past the last seed", start, count)
	}
	return nil
}

func printReport(tk *toolkit, req search.Request, r search.Report) {
	winnowed := ""
	if req.Winnow.Any() {
		winnowed = fmt.Sprintf("winnowed (%s) to %d ", req.Winnow, r.Accepted)
	}
	saved := ""
	if req.Save {
		saved = fmt.Sprintf("and saved %d ", r.Saved)
	}
	fmt.Fprintf(tk.out, "%d maps generated %s%sin %.3f seconds\n",
		r.Processed, winnowed, saved, r.Elapsed.Seconds())
	if r.Failed > 0 || r.SaveErrors > 0 {
		fmt.Fprintf(tk.out, "%d seeds failed, %d maps could not be saved\n", r.Failed, r.SaveErrors)
	}
	if r.Elapsed > 0 {
		logger.Always("Throughput", "seeds_per_second", float64(r.Processed)/r.Elapsed.Seconds(),
			"elapsed", r.Elapsed.Round(time.Millisecond))
	}
}
