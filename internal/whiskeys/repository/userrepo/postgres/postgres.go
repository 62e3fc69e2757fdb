package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/pgtools"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/userrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) UsersPostgresRepo {
	return UsersPostgresRepo{
		db: db,
	}
}

func (ur UsersPostgresRepo) CreateUser(ctx context.Context, u models.User) (id int64, err error) { //nolint:nonamedreturns
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	query, args, err := pgtools.PSQL.Insert("users").
		Columns("username", "password_hash").
		Values(u.Username, u.PasswordHash).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if pgtools.PgErrorCode(err) == pgtools.CodeUniqueViolation {
			return 0, userrepo.ErrAlreadyExists
		}

		return 0, fmt.Errorf("scan error: %w", err)
	}

	return id, nil
}

func (ur UsersPostgresRepo) GetUser(ctx context.Context, username string) (u models.User, err error) { //nolint:nonamedreturns
	query, args, err := pgtools.PSQL.Select("id", "username", "password_hash").
		From("users").
		Where(squirrel.Eq{"username": username}).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("to sql error: %w", err)
	}

	if err := ur.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, userrepo.ErrNotFound
		}

		return models.User{}, fmt.Errorf("scan error: %w", err)
	}

	return u, nil
}
