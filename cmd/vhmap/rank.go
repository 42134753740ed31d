package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/vhtoolkit/overworld/internal/catalog"
	"github.com/vhtoolkit/overworld/internal/logger"
	"github.com/vhtoolkit/overworld/internal/mapfile"
	"github.com/vhtoolkit/overworld/internal/route"
)

type ranked struct {
	code  string
	score route.Score
}

func runRank(ctx context.Context, tk *toolkit, args []string) error {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dir := fs.String("dir", tk.cfg.Paths.SaveDir, "Directory of saved maps")
	limit := fs.Int("limit", 20, "Number of maps to list (0 for all)")
	useCatalog := fs.Bool("catalog", tk.cfg.Catalog.Enabled, "Rank from the seed catalog instead of the map files")
	fs.Parse(args)

	var list []ranked
	var err error
	if *useCatalog {
		list, err = rankCatalog(ctx, tk, *limit)
	} else {
		list, err = rankDir(*dir, *limit)
	}
	if err != nil {
		return err
	}

	r := tk.renderer()
	for i, e := range list {
		fmt.Fprintf(tk.out, "%4d. ", i+1)
		if err := r.Score(e.code, e.score); err != nil {
			return err
		}
	}
	return nil
}

func rankCatalog(ctx context.Context, tk *toolkit, limit int) ([]ranked, error) {
	cat, err := catalog.Open(tk.cfg.Catalog.Config)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	entries, err := cat.Rank(ctx, limit)
	if err != nil {
		return nil, err
	}
	list := make([]ranked, len(entries))
	for i, e := range entries {
		list[i] = ranked{e.Code, route.Score{FirstLeg: e.FirstLeg, LastLeg: e.LastLeg}}
	}
	return list, nil
}

// rankDir scores every map file in dir, longest route first. Files holding
// the same map as an earlier code are listed once.
func rankDir(dir string, limit int) ([]ranked, error) {
	saved, err := mapfile.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := mapset.New[string]()
	var list []ranked
	for _, s := range saved {
		digest := s.Map.Digest()
		if seen.Has(digest) {
			continue
		}
		seen.Put(digest)

		score, err := route.Analyze(s.Map)
		if err != nil {
			logger.Warning("Skipping map without a full set of landmarks", "path", s.Path, "error", err)
			continue
		}
		list = append(list, ranked{s.Code, score})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score.Total() > list[j].score.Total()
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
