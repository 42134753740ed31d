package catalog

import "strings"

// QueryBuilder rewrites queries written with ? markers for a dialect.
type QueryBuilder struct {
	dialect Dialect
}

func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build replaces each ? with the dialect's placeholder.
//
//	input:    "SELECT * FROM seeds WHERE code = ? AND total < ?"
//	SQLite:   unchanged
//	Postgres: "SELECT * FROM seeds WHERE code = $1 AND total < $2"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var b strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}
