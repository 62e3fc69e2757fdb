package pgtools_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/pgtools"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestPgErrorCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgtools.CodeForeignKeyViolation} //nolint:exhaustruct

	require.Equal(t, pgtools.CodeForeignKeyViolation, pgtools.PgErrorCode(fmt.Errorf("exec error: %w", pgErr)))
	require.Equal(t, "", pgtools.PgErrorCode(errors.New("plain")))
	require.Equal(t, "", pgtools.PgErrorCode(nil))
}

func TestPSQLUsesDollarPlaceholders(t *testing.T) {
	query, args, err := pgtools.PSQL.Select("id").From("tags").Where("user_id = ?", 3).ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM tags WHERE user_id = $1", query)
	require.Equal(t, []interface{}{3}, args)
}
