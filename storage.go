package cms

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/memberweb/cms/internal/storage"
)

// Driver selects the bun dialect wrapped around a database handle.
type Driver = storage.Driver

const (
	DriverSQLite   = storage.DriverSQLite
	DriverPostgres = storage.DriverPostgres
)

// OpenSQLiteDB opens an SQLite database for the module. An empty DSN uses a
// shared in-memory database suitable for tests and local development.
func OpenSQLiteDB(dsn string) (*bun.DB, error) {
	return storage.OpenSQLite(dsn)
}

// WrapDB wraps a host-owned database handle with the dialect for the driver.
// The host keeps ownership of the connection pool and driver registration.
func WrapDB(sqlDB *sql.DB, driver Driver) (*bun.DB, error) {
	return storage.NewDB(sqlDB, driver)
}

// Migrate applies the embedded schema migrations to the database.
func Migrate(ctx context.Context, db *bun.DB) error {
	return storage.RunMigrations(ctx, db, GetMigrationsFS(), MigrationsDir)
}
