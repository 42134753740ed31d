package mapfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vhtoolkit/overworld/internal/generator"
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
)

// DirSink saves accepted maps as {code}.BIN files in Dir.
type DirSink struct {
	Dir string
}

func (s DirSink) Put(ctx context.Context, res *generator.Result) error {
	return Save(CodePath(s.Dir, res.Code), res.Map)
}

// Saved is a map file found in a save directory.
type Saved struct {
	Code string
	Path string
	Map  *grid.Map
}

// ReadDir loads every .BIN file in dir, sorted by code. Files that fail
// to decode are logged and skipped.
func ReadDir(dir string) ([]Saved, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	var out []Saved
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".bin") {
			continue
		}
		path := filepath.Join(dir, name)
		m, err := Load(path)
		if err != nil {
			logger.Warning("Skipping unreadable map file", "path", path, "error", err)
			continue
		}
		out = append(out, Saved{
			Code: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: path,
			Map:  m,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
