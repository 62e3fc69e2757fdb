package pgtools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/migrations"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // driver for migrations
	"github.com/pressly/goose/v3"
)

const maxDelay = time.Second * 10

const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// PSQL is the statement builder shared by the repositories.
var PSQL = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar) //nolint:gochecknoglobals

// Connect opens a pool and waits until the database answers, waiting a
// second longer after every failed ping.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool error: %w", err)
	}

	delay := time.Second

	for {
		err := db.Ping(ctx)
		if err == nil {
			return db, nil
		}

		if delay > maxDelay {
			db.Close()

			return nil, fmt.Errorf("cannot ping db error: %w", err)
		}

		t := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			t.Stop()
			db.Close()

			return nil, fmt.Errorf("context error: %w", ctx.Err())
		case <-t.C:
		}

		delay += time.Second
	}
}

// ApplyMigration runs the embedded goose migrations up to cfg.Version,
// or to the latest one when the version is not set.
func ApplyMigration(ctx context.Context, cfg config.PostgresDB) error {
	defaultVersion := 0

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect error: %w", err)
	}

	dbM, err := goose.OpenDBWithDriver("pgx", cfg.DSN())
	if err != nil {
		return fmt.Errorf("goose open pgx db error: %w", err)
	}
	defer dbM.Close()

	if cfg.Reload {
		if err := goose.DownToContext(ctx, dbM, ".", int64(defaultVersion)); err != nil {
			return fmt.Errorf("goose down error: %w", err)
		}
	}

	if cfg.Version == 0 {
		if err := goose.UpContext(ctx, dbM, "."); err != nil {
			return fmt.Errorf("goose up error: %w", err)
		}

		return nil
	}

	if err := goose.UpToContext(ctx, dbM, ".", int64(cfg.Version)); err != nil {
		return fmt.Errorf("goose up error: %w", err)
	}

	return nil
}

func CommitOrRollback(ctx context.Context, tx pgx.Tx, err error, where string) error {
	if err == nil {
		if errT := tx.Commit(ctx); errT != nil {
			err = fmt.Errorf("commit error: %w", errT)
		}
	} else {
		if errT := tx.Rollback(ctx); errT != nil {
			err = fmt.Errorf("%s error: %w rollback error: %w", where, err, errT)
		} else {
			err = fmt.Errorf("%s error: %w", where, err)
		}
	}

	return err
}

// PgErrorCode returns the SQLSTATE of err, or "" when err is not a postgres error.
func PgErrorCode(err error) string {
	target := new(pgconn.PgError)
	if errors.As(err, &target) {
		return target.Code
	}

	return ""
}
