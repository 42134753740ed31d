package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vhtoolkit/overworld/internal/catalog"
	"github.com/vhtoolkit/overworld/internal/generator"
)

// ToolkitConfig holds the settings shared by the command line tools.
type ToolkitConfig struct {
	Paths   PathsConfig   `yaml:"paths"`
	Search  SearchConfig  `yaml:"search"`
	Winnow  WinnowConfig  `yaml:"winnow"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// PathsConfig locates map files on disk.
type PathsConfig struct {
	// BaseMaps is the directory holding GR_BASE1.BIN to GR_BASE5.BIN.
	BaseMaps string `yaml:"base_maps"`

	// SaveDir receives accepted maps as {CODE}.BIN.
	SaveDir string `yaml:"save_dir"`

	// HeatDir receives heat map dumps.
	HeatDir string `yaml:"heat_dir"`
}

// SearchConfig holds batch search settings.
type SearchConfig struct {
	// Workers is the number of goroutines a range is split across.
	Workers int `yaml:"workers"`
}

// WinnowConfig holds the limits the winnow filters test against.
type WinnowConfig struct {
	BaseMapID  int `yaml:"base_map_id"`
	MaxLastLeg int `yaml:"max_last_leg"`
	MaxTotal   int `yaml:"max_total"`

	// RoutePolicy is "reject" or "retry".
	RoutePolicy string `yaml:"route_policy"`

	// MaxAttempts caps placement attempts per seed. 0 means unlimited.
	MaxAttempts int `yaml:"max_attempts"`
}

// CatalogConfig enables the optional SQL seed catalog.
type CatalogConfig struct {
	Enabled        bool `yaml:"enabled"`
	catalog.Config `yaml:",inline"`
}

// DefaultConfig returns a ToolkitConfig with the stock settings.
func DefaultConfig() *ToolkitConfig {
	t := generator.DefaultThresholds()
	return &ToolkitConfig{
		Paths: PathsConfig{
			BaseMaps: "basemaps",
			SaveDir:  "genmaps",
			HeatDir:  "basemaps",
		},
		Search: SearchConfig{
			Workers: 4,
		},
		Winnow: WinnowConfig{
			BaseMapID:   t.BaseMapID,
			MaxLastLeg:  t.MaxLastLeg,
			MaxTotal:    t.MaxTotal,
			RoutePolicy: generator.RejectRoute.String(),
		},
		Catalog: CatalogConfig{
			Config: catalog.DefaultConfig("data/seeds.db"),
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// A missing file yields the defaults. A file that can't be parsed yields
// the defaults and the parse error.
func LoadConfig(path string) (*ToolkitConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *ToolkitConfig) Validate() error {
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be at least 1, got %d", c.Search.Workers)
	}
	if c.Winnow.BaseMapID < 1 || c.Winnow.BaseMapID > 5 {
		return fmt.Errorf("winnow.base_map_id must be 1-5, got %d", c.Winnow.BaseMapID)
	}
	if c.Winnow.MaxAttempts < 0 {
		return fmt.Errorf("winnow.max_attempts must not be negative")
	}
	switch strings.ToLower(c.Winnow.RoutePolicy) {
	case "reject", "retry":
	default:
		return fmt.Errorf("winnow.route_policy must be reject or retry, got %q", c.Winnow.RoutePolicy)
	}
	switch c.Catalog.Driver {
	case string(catalog.DialectSQLite), string(catalog.DialectPostgres):
	default:
		return fmt.Errorf("catalog.driver must be sqlite or postgres, got %q", c.Catalog.Driver)
	}
	return nil
}

// Thresholds returns the winnow limits in generator form.
func (c *WinnowConfig) Thresholds() generator.Thresholds {
	return generator.Thresholds{
		BaseMapID:  c.BaseMapID,
		MaxLastLeg: c.MaxLastLeg,
		MaxTotal:   c.MaxTotal,
	}
}

// Apply copies the winnow settings onto g.
func (c *WinnowConfig) Apply(g *generator.Generator) {
	g.Thresholds = c.Thresholds()
	g.Policy = generator.ParseRoutePolicy(c.RoutePolicy)
	g.MaxAttempts = c.MaxAttempts
}
