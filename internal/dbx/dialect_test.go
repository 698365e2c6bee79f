package dbx

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = ? AND y LIKE ? ESCAPE '\' LIMIT ?`

	assert.Equal(t, `SELECT a FROM t WHERE x = $1 AND y LIKE $2 ESCAPE '\' LIMIT $3`, Postgres.Rebind(q))
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "SELECT 1", Postgres.Rebind("SELECT 1"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect(" Postgres ")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)
	assert.Equal(t, "pgx", d.DriverName())

	d, err = ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.DriverName())

	_, err = ParseDialect("mysql")
	require.Error(t, err)
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(err))

	err = fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23503"})
	assert.False(t, IsUniqueViolation(err))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", SQLiteDSN(":memory:"))
	assert.Equal(t, "file:seller.db?mode=rwc&_pragma=foreign_keys(1)", SQLiteDSN("file:seller.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", SQLiteDSN("x.db?_pragma=foreign_keys(0)"))
}
