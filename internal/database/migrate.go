package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending embedded migration and returns the resulting schema version.
// goose needs a database/sql handle, so the pool is wrapped through the pgx stdlib adapter.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	return withGoose(ctx, pool, func(db *sql.DB) (int64, error) {
		if err := goose.UpContext(ctx, db, MigrationsDir); err != nil {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
		}
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadMigrationVer, err)
		}
		slog.Default().Info(LogMsgMigrationsApplied, "version", version)
		return version, nil
	})
}

// MigrationVersion reports the schema version without applying anything
func MigrationVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	return withGoose(ctx, pool, func(db *sql.DB) (int64, error) {
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadMigrationVer, err)
		}
		return version, nil
	})
}

func withGoose(ctx context.Context, pool *pgxpool.Pool, fn func(*sql.DB) (int64, error)) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(MigrationsDialect); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSetDialect, err)
	}
	return fn(db)
}
