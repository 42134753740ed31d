package catalog

// Dialect covers the SQL differences between SQLite and PostgreSQL that
// the catalog runs into.
type Dialect interface {
	// DriverName is the database/sql driver name.
	DriverName() string

	// Placeholder returns the parameter marker for a 1-indexed position.
	Placeholder(position int) string

	// InitStatements run once after connecting.
	InitStatements() []string

	// BigInt is the column type wide enough for an unsigned 32-bit seed.
	BigInt() string

	// IsDuplicateKeyError reports a unique constraint violation.
	IsDuplicateKeyError(err error) bool
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for t. Unknown types get SQLite.
func NewDialect(t DialectType) Dialect {
	switch t {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
