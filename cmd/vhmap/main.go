// Command vhmap generates, searches and inspects Virtual Hydlide overworld
// maps.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/vhtoolkit/overworld/internal/config"
	"github.com/vhtoolkit/overworld/internal/generator"
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
	"github.com/vhtoolkit/overworld/internal/mapfile"
	"github.com/vhtoolkit/overworld/internal/render"
)

type command struct {
	summary string
	run     func(ctx context.Context, tk *toolkit, args []string) error
}

var commands = map[string]command{
	"generate": {"generate and print maps for seed codes", runGenerate},
	"basemaps": {"print the five base maps", runBaseMaps},
	"batch":    {"sweep a seed range, winnowing and saving maps", runBatch},
	"rank":     {"rank saved maps by route length", runRank},
	"heat":     {"flood a heat map from one cell and save it", runHeat},
	"time":     {"time the generation of a million seeds", runTime},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags]\n\nCommands:\n", os.Args[0])
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-9s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "vhmap.yaml", "Path to toolkit config YAML file")
	verbose := flag.Bool("v", false, "Log at DEBUG level")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	logConfig, err := logger.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading logging config: %v\n", err)
	}
	logger.Initialize(logConfig)
	if *verbose {
		logger.SetLevel("DEBUG")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cmd.run(ctx, newToolkit(cfg, os.Stdout), flag.Args()[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// toolkit carries what every command needs.
type toolkit struct {
	cfg   *config.ToolkitConfig
	bases *mapfile.Cache
	out   io.Writer
}

func newToolkit(cfg *config.ToolkitConfig, out io.Writer) *toolkit {
	return &toolkit{
		cfg:   cfg,
		bases: mapfile.NewCache(mapfile.DirProvider{Dir: cfg.Paths.BaseMaps}),
		out:   out,
	}
}

func (tk *toolkit) generator() *generator.Generator {
	g := generator.New(tk.bases)
	tk.cfg.Winnow.Apply(g)
	return g
}

func (tk *toolkit) renderer() *render.Renderer {
	return render.NewRenderer(tk.out)
}

// genFlags are the flags shared by commands that generate maps.
type genFlags struct {
	difficulty    *string
	baseMap       *bool
	perfectEnding *bool
	shortPath     *bool
}

func addGenFlags(fs *flag.FlagSet) *genFlags {
	return &genFlags{
		difficulty:    fs.String("difficulty", "Easy", "Difficulty: Easy, Medium, Hard or PRO"),
		baseMap:       fs.Bool("basemap", false, "Reject seeds that do not use the preferred base map"),
		perfectEnding: fs.Bool("ending", false, "Reject maps with a long volcano-sealed-castle leg"),
		shortPath:     fs.Bool("short", false, "Reject maps with a long total route"),
	}
}

func (f *genFlags) Difficulty() grid.Difficulty {
	return grid.ParseDifficulty(*f.difficulty)
}

func (f *genFlags) Winnow() generator.Winnow {
	return generator.Winnow{
		BaseMap:       *f.baseMap,
		PerfectEnding: *f.perfectEnding,
		ShortPath:     *f.shortPath,
	}
}
