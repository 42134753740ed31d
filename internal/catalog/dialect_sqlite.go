package catalog

import (
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string { return "sqlite" }

// Placeholder is always "?".
func (d *SQLiteDialect) Placeholder(position int) string { return "?" }

// InitStatements turn on WAL so sweeps can write while ranks read.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// BigInt is INTEGER; SQLite integers are always 64-bit.
func (d *SQLiteDialect) BigInt() string { return "INTEGER" }

func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
