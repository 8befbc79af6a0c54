package database

import (
	"context"
	"fmt"

	"github.com/alexivanou/cityinfo-api/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the configured store: in-memory SQLite for development and
// tests, PostgreSQL through pgx otherwise.
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsMemory() {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// points_of_interest cascades on city deletes; SQLite only honors the
	// FK constraint with the pragma switched on
	if cfg.IsMemory() {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}
