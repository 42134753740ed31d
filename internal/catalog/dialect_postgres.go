package catalog

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresDialect targets github.com/lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string { return "postgres" }

// Placeholder returns "$N".
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (d *PostgresDialect) InitStatements() []string { return nil }

func (d *PostgresDialect) BigInt() string { return "BIGINT" }

// IsDuplicateKeyError checks for SQLSTATE 23505.
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
