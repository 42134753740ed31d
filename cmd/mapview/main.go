// mapview prints saved overworld map files with their route report.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/mapfile"
	"github.com/vhtoolkit/overworld/internal/render"
	"github.com/vhtoolkit/overworld/internal/route"
)

func main() {
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	mednafen := flag.Bool("mednafen", false, "Inputs are emulator RAM dumps rather than map files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: mapview [flags] FILE...\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var output bytes.Buffer
	r := &render.Renderer{W: &output, Color: *outputFile == "" && render.IsTerminal(os.Stdout)}

	for _, path := range flag.Args() {
		m, err := load(path, *mednafen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		renderFile(&output, r, path, m)
	}

	if *showLegend {
		r.Legend()
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		os.Stdout.Write(output.Bytes())
	}
}

func load(path string, mednafen bool) (*grid.Map, error) {
	if mednafen {
		return mapfile.LoadMednafen(path)
	}
	return mapfile.Load(path)
}

func renderFile(output *bytes.Buffer, r *render.Renderer, path string, m *grid.Map) {
	code := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	output.WriteString(fmt.Sprintf("%s (%s)\n", code, path))
	r.Map(m)

	if score, err := route.Analyze(m); err == nil {
		r.Score(code, score)
	} else {
		output.WriteString(fmt.Sprintf("no route: %v\n", err))
	}
	output.WriteString(strings.Repeat("=", 50) + "\n\n")
}
