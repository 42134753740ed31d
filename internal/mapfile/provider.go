package mapfile

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
)

// BaseMapCount is the number of base maps the game ships.
const BaseMapCount = 5

// Provider loads base maps by id (1..BaseMapCount).
type Provider interface {
	BaseMap(id int) (*grid.Map, error)
}

// DirProvider loads GR_BASE{id}.BIN files from a directory.
type DirProvider struct {
	Dir string
}

// BaseMapPath is the path of base map id inside dir.
func BaseMapPath(dir string, id int) string {
	return filepath.Join(dir, fmt.Sprintf("GR_BASE%d.BIN", id))
}

func (p DirProvider) BaseMap(id int) (*grid.Map, error) {
	if id < 1 || id > BaseMapCount {
		return nil, fmt.Errorf("base map %d out of range", id)
	}
	return Load(BaseMapPath(p.Dir, id))
}

// Cache keeps decoded base maps in memory. It is safe for concurrent use;
// callers always get their own copy.
type Cache struct {
	src Provider

	mu   sync.RWMutex
	maps map[int]*grid.Map
}

// NewCache wraps src.
func NewCache(src Provider) *Cache {
	return &Cache{
		src:  src,
		maps: make(map[int]*grid.Map),
	}
}

func (c *Cache) BaseMap(id int) (*grid.Map, error) {
	c.mu.RLock()
	m, ok := c.maps[id]
	c.mu.RUnlock()
	if ok {
		return m.Clone(), nil
	}

	m, err := c.src.BaseMap(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// two loaders may race here; both read the same file
	if _, ok := c.maps[id]; !ok {
		c.maps[id] = m
	}
	c.mu.Unlock()

	return m.Clone(), nil
}

// Preload loads every base map so workers only ever read the cache.
func (c *Cache) Preload() error {
	for id := 1; id <= BaseMapCount; id++ {
		if _, err := c.BaseMap(id); err != nil {
			return fmt.Errorf("failed to preload base map %d: %w", id, err)
		}
	}
	logger.Debug("Base maps cached", "count", BaseMapCount)
	return nil
}

// Len is the number of cached maps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.maps)
}
