// Package catalog indexes accepted seeds in SQL so large sweeps can be
// ranked without rereading every saved map. The map files stay the source
// of truth; a catalog can always be rebuilt from a save directory.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zyedidia/generic/mapset"

	"github.com/vhtoolkit/overworld/internal/generator"
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
)

// ErrNotFound is returned by Get for an unknown code.
var ErrNotFound = errors.New("catalog: seed not found")

// Entry is one catalogued seed.
type Entry struct {
	Code       string
	Seed       uint32
	Difficulty grid.Difficulty
	BaseMap    int
	Rotation   int
	Attempts   int
	FirstLeg   int
	LastLeg    int
	Digest     string
}

// Total is the full route length.
func (e Entry) Total() int {
	return e.FirstLeg + e.LastLeg
}

// EntryFor summarises a generation result.
func EntryFor(res *generator.Result) Entry {
	return Entry{
		Code:       res.Code,
		Seed:       res.Seed,
		Difficulty: res.Difficulty,
		BaseMap:    res.BaseMap,
		Rotation:   res.Rotation,
		Attempts:   res.Attempts,
		FirstLeg:   res.Route.FirstLeg,
		LastLeg:    res.Route.LastLeg,
		Digest:     res.Map.Digest(),
	}
}

// Catalog is an open catalog database.
type Catalog struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects to the database cfg describes and creates the schema.
func Open(cfg Config) (*Catalog, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case *PostgresDialect:
		dsn = cfg.Postgres.DSN()
	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if _, ok := dialect.(*PostgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialise catalog: %w", err)
		}
	}

	c := &Catalog{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("Catalog opened", "driver", dialect.DriverName())
	return c, nil
}

// OpenSQLite opens a SQLite catalog at path.
func OpenSQLite(path string) (*Catalog, error) {
	return Open(DefaultConfig(path))
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// DB returns the underlying sql.DB.
func (c *Catalog) DB() *sql.DB {
	return c.db
}

// Dialect returns the catalog's dialect.
func (c *Catalog) Dialect() Dialect {
	return c.dialect
}

func (c *Catalog) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS seeds (
			code TEXT PRIMARY KEY,
			seed %s NOT NULL,
			difficulty TEXT NOT NULL,
			base_map INTEGER NOT NULL,
			rotation INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			first_leg INTEGER NOT NULL,
			last_leg INTEGER NOT NULL,
			total INTEGER NOT NULL,
			digest TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, c.dialect.BigInt()),
		`CREATE INDEX IF NOT EXISTS idx_seeds_total ON seeds(total)`,
		`CREATE INDEX IF NOT EXISTS idx_seeds_digest ON seeds(digest)`,
	}

	for _, m := range migrations {
		if _, err := c.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Put records an accepted map, replacing any earlier entry for its code.
func (c *Catalog) Put(ctx context.Context, res *generator.Result) error {
	return c.Upsert(ctx, EntryFor(res))
}

// Upsert inserts e or replaces the entry with the same code.
func (c *Catalog) Upsert(ctx context.Context, e Entry) error {
	query := c.qb.Build(`
		INSERT INTO seeds (code, seed, difficulty, base_map, rotation, attempts, first_leg, last_leg, total, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			seed = excluded.seed,
			difficulty = excluded.difficulty,
			base_map = excluded.base_map,
			rotation = excluded.rotation,
			attempts = excluded.attempts,
			first_leg = excluded.first_leg,
			last_leg = excluded.last_leg,
			total = excluded.total,
			digest = excluded.digest
	`)
	_, err := c.db.ExecContext(ctx, query,
		e.Code, int64(e.Seed), e.Difficulty.String(), e.BaseMap, e.Rotation, e.Attempts,
		e.FirstLeg, e.LastLeg, e.Total(), e.Digest)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", e.Code, err)
	}
	return nil
}

const entryColumns = `code, seed, difficulty, base_map, rotation, attempts, first_leg, last_leg, digest`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	var seed int64
	var difficulty string
	err := row.Scan(&e.Code, &seed, &difficulty, &e.BaseMap, &e.Rotation, &e.Attempts, &e.FirstLeg, &e.LastLeg, &e.Digest)
	if err != nil {
		return Entry{}, err
	}
	e.Seed = uint32(seed)
	e.Difficulty = grid.ParseDifficulty(difficulty)
	return e, nil
}

// Get returns the entry for code.
func (c *Catalog) Get(ctx context.Context, code string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, c.qb.Build(`SELECT `+entryColumns+` FROM seeds WHERE code = ?`), code)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to load %s: %w", code, err)
	}
	return e, nil
}

// Count returns the number of catalogued seeds.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seeds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count seeds: %w", err)
	}
	return n, nil
}

// Rank returns up to limit entries ordered by total route length,
// longest first, then by code. Codes that produce a map already listed
// under another code are left out. A limit of zero or less returns all.
func (c *Catalog) Rank(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM seeds ORDER BY total DESC, code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to rank seeds: %w", err)
	}
	defer rows.Close()

	seen := mapset.New[string]()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed: %w", err)
		}
		if seen.Has(e.Digest) {
			continue
		}
		seen.Put(e.Digest)
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, rows.Err()
}

// All calls fn for every entry in code order.
func (c *Catalog) All(ctx context.Context, fn func(Entry) error) error {
	rows, err := c.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM seeds ORDER BY code`)
	if err != nil {
		return fmt.Errorf("failed to list seeds: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("failed to read seed: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CopyTo copies every entry into dst and returns how many were written.
// With dryRun set nothing is written and the count is what would be.
func (c *Catalog) CopyTo(ctx context.Context, dst *Catalog, dryRun bool) (int64, error) {
	var n int64
	err := c.All(ctx, func(e Entry) error {
		if !dryRun {
			if err := dst.Upsert(ctx, e); err != nil {
				return err
			}
		}
		n++
		return nil
	})
	return n, err
}
