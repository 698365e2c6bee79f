// Package repomanager opens the store, applies the embedded goose
// migrations and vends repositories bound to a DBTX, so services can run
// the same repositories on a pool or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/migrations"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/sellers"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Sellers(db dbx.DBTX) sellers.Repository
}

// SQLRepositoryManager vends the SQL repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	if _, err := dbx.ParseDialect(string(dialect)); err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Sellers(db dbx.DBTX) sellers.Repository {
	return sellers.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	dir, gooseDialect := migrations.PostgresDir, "pgx"
	if m.dialect == dbx.SQLite {
		dir, gooseDialect = migrations.SQLiteDir, "sqlite3"
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return err
	}
	return nil
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open connects to the database and verifies the connection. SQLite is
// pinned to a single connection: it has one writer anyway, and an in-memory
// database lives only as long as its connection. Its DSN carries the
// foreign_keys pragma, so a replaced connection still enforces them.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	if dialect == dbx.SQLite {
		dsn = dbx.SQLiteDSN(dsn)
	}

	db, err := sqlOpen(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == dbx.SQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return db, nil
}
