package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Driver selects the bun dialect wrapped around a database handle.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// OpenSQLite opens an SQLite database at the given DSN and wraps it with the
// sqlite dialect. In-memory DSNs should use cache=shared so the pool sees one
// database.
func OpenSQLite(dsn string) (*bun.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file::memory:?cache=shared&_fk=1"
	}
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewDB wraps an existing database handle with the dialect matching the
// driver. Postgres handles are supplied by the host application, which owns
// the driver registration and connection pool.
func NewDB(sqlDB *sql.DB, driver Driver) (*bun.DB, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("storage: sql db is required")
	}
	switch driver {
	case DriverSQLite:
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres:
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}

// RunMigrations applies every .sql file under dir in lexical order.
// Statements within a file are separated by the ---bun:split marker.
func RunMigrations(ctx context.Context, db *bun.DB, fsys fs.FS, dir string) error {
	if db == nil {
		return fmt.Errorf("storage: db is required")
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		for _, chunk := range strings.Split(string(raw), "---bun:split") {
			statement := strings.TrimSpace(chunk)
			if statement == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
	}
	return nil
}
