// Package repotest opens throwaway SQLite databases with the real schema
// for repository and service tests.
package repotest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// NewSQLite returns a migrated in-memory database pinned to one connection.
// goose keeps global state, so callers must not run in parallel.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", dbx.SQLiteDSN(":memory:"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("goose dialect: %v", err)
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(context.Background(), db, migrations.SQLiteDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// InsertAccount adds an account row directly and returns its number.
func InsertAccount(t testing.TB, db *sql.DB, loginID, hash, role, status string) int64 {
	t.Helper()

	var no int64
	err := db.QueryRow(
		`INSERT INTO accounts (login_id, password, role, status, created_at) VALUES (?, ?, ?, ?, ?) RETURNING account_no`,
		loginID, hash, role, status, time.Now().UTC(),
	).Scan(&no)
	if err != nil {
		t.Fatalf("insert account: %v", err)
	}
	return no
}

func InsertAppUser(t testing.TB, db *sql.DB, appUserID string) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO app_users (app_user_id) VALUES (?)`, appUserID); err != nil {
		t.Fatalf("insert app user: %v", err)
	}
}
