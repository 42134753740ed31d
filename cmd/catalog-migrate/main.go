// catalog-migrate copies a SQLite seed catalog into PostgreSQL.
//
// Usage:
//
//	go run ./cmd/catalog-migrate \
//	    -sqlite data/seeds.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user vhmap \
//	    -pg-password vhmap \
//	    -pg-database vhmap
package main

import (
	"context"
	"flag"
	"log"

	"github.com/vhtoolkit/overworld/internal/catalog"
)

func main() {
	defaults := catalog.DefaultPostgresConfig()
	sqlitePath := flag.String("sqlite", "data/seeds.db", "Path to SQLite catalog")
	pgHost := flag.String("pg-host", defaults.Host, "PostgreSQL host")
	pgPort := flag.Int("pg-port", defaults.Port, "PostgreSQL port")
	pgUser := flag.String("pg-user", defaults.User, "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", defaults.Database, "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", defaults.SSLMode, "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("Seed catalog migration: SQLite to PostgreSQL")

	log.Printf("Opening SQLite catalog: %s", *sqlitePath)
	src, err := catalog.OpenSQLite(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite catalog: %v", err)
	}
	defer src.Close()

	pg := defaults
	pg.Host = *pgHost
	pg.Port = *pgPort
	pg.User = *pgUser
	pg.Password = *pgPassword
	pg.Database = *pgDatabase
	pg.SSLMode = *pgSSLMode

	log.Printf("Opening PostgreSQL catalog: %s@%s:%d/%s", pg.User, pg.Host, pg.Port, pg.Database)
	dst, err := catalog.Open(catalog.Config{Driver: string(catalog.DialectPostgres), Postgres: pg})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL catalog: %v", err)
	}
	defer dst.Close()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	ctx := context.Background()
	n, err := src.CopyTo(ctx, dst, *dryRun)
	if err != nil {
		log.Fatalf("Migration stopped after %d seeds: %v", n, err)
	}

	log.Printf("Migration complete! Seeds copied: %d", n)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}
