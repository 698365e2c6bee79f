package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (login_id, password, role, status, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING account_no
		 `

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		account.LoginID, account.PasswordHash, string(account.Role), string(account.Status), account.CreatedAt,
	).Scan(&account.AccountNo)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

const selectAccount = `SELECT account_no, login_id, password, role, status, created_at FROM accounts`

func (r *SQLRepository) getOne(ctx context.Context, where string, arg any) (*models.Account, error) {
	a := &models.Account{}
	var role, status string

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(selectAccount+" WHERE "+where), arg).
		Scan(&a.AccountNo, &a.LoginID, &a.PasswordHash, &role, &status, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	a.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.Status = models.SellerStatus(status)
	return a, nil
}

func (r *SQLRepository) GetByLoginID(ctx context.Context, loginID string) (*models.Account, error) {
	return r.getOne(ctx, "login_id = ?", loginID)
}

func (r *SQLRepository) GetCredentialHash(ctx context.Context, accountNo int64) (string, error) {
	query := `SELECT password FROM accounts WHERE account_no = ?`

	var hash string
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), accountNo).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return hash, nil
}

// exec runs a single-row update and maps "no row touched" to missing.
func (r *SQLRepository) exec(ctx context.Context, missing error, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return missing
	}

	return nil
}

func (r *SQLRepository) SetCredentialHash(ctx context.Context, accountNo int64, hash string) error {
	return r.exec(ctx, common.ErrorNotFound,
		`UPDATE accounts SET password = ? WHERE account_no = ?`, hash, accountNo)
}

func (r *SQLRepository) CompareAndSetCredentialHash(ctx context.Context, accountNo int64, oldHash, newHash string) error {
	return r.exec(ctx, common.ErrVersionConflict,
		`UPDATE accounts SET password = ? WHERE account_no = ? AND password = ?`, newHash, accountNo, oldHash)
}

// SetStatus only touches seller accounts; a master has no seller status.
func (r *SQLRepository) SetStatus(ctx context.Context, accountNo int64, status models.SellerStatus) error {
	return r.exec(ctx, common.ErrorNotFound,
		`UPDATE accounts SET status = ? WHERE account_no = ? AND role = 'seller'`, string(status), accountNo)
}

func (r *SQLRepository) GetStatus(ctx context.Context, accountNo int64) (models.SellerStatus, error) {
	query := `SELECT status FROM accounts WHERE account_no = ? AND role = 'seller'`

	var status string
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), accountNo).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return models.SellerStatus(status), nil
}
