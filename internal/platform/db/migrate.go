package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/wellpulse/wellpulse/internal/platform/db/migrations"
)

// Migrate applies all pending schema migrations embedded in the binary.
// It opens a short-lived database/sql connection because goose drives
// the stdlib interface, not pgx native.
func Migrate(ctx context.Context, dsn string) error {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("platform/db: open for migrations: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("platform/db: set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("platform/db: run migrations: %w", err)
	}
	return nil
}
